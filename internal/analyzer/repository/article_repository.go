package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/extractor"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/utils"

	"github.com/mmcdole/gofeed"
)

// InputParseError reports a source channel that exists but cannot be
// decoded. The channel is recorded as failed; the run continues.
type InputParseError struct {
	Source string
	Err    error
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *InputParseError) Unwrap() error {
	return e.Err
}

// SourceBatch is the decoded article list of one input channel.
type SourceBatch struct {
	Name     string
	Articles []entity.Article
}

// LoadResult carries the decoded channels and the names of the channels
// that failed to parse.
type LoadResult struct {
	Batches       []SourceBatch
	FailedSources []string
}

// ArticleRepository loads news articles from the configured channels.
type ArticleRepository interface {
	LoadAll(ctx context.Context) (*LoadResult, error)
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(cfg config.Sources, ext *extractor.Extractor, log *logger.Logger) ArticleRepository {
	return &articleRepository{
		cfg:       cfg,
		extractor: ext,
		logger:    log,
		parser:    gofeed.NewParser(),
	}
}

type articleRepository struct {
	cfg       config.Sources
	extractor *extractor.Extractor
	logger    *logger.Logger
	parser    *gofeed.Parser
}

// LoadAll reads every configured channel in a stable order: the *.json
// files under the sources dir sorted by name, then the explicit
// channels in config order. A missing file is logged and skipped; a
// channel that fails to decode is recorded in FailedSources.
func (r *articleRepository) LoadAll(ctx context.Context) (*LoadResult, error) {
	result := &LoadResult{Batches: []SourceBatch{}, FailedSources: []string{}}

	channels, err := r.resolveChannels()
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := r.loadChannel(ctx, channel)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				r.logger.Warn("Source file missing, skipping", logger.Field("source", channel.Name))
				continue
			}
			parseErr := &InputParseError{Source: channel.Name, Err: err}
			r.logger.Error("Failed to load source", logger.ErrorField(parseErr))
			result.FailedSources = append(result.FailedSources, channel.Name)
			continue
		}

		r.logger.Info("Source loaded",
			logger.Field("source", channel.Name),
			logger.IntField("articles", len(batch.Articles)),
		)
		result.Batches = append(result.Batches, *batch)
	}

	return result, nil
}

func (r *articleRepository) resolveChannels() ([]config.SourceChannel, error) {
	var channels []config.SourceChannel
	if r.cfg.Dir != "" {
		files, err := filepath.Glob(filepath.Join(r.cfg.Dir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to scan sources dir: %w", err)
		}
		sort.Strings(files)
		for _, file := range files {
			channels = append(channels, config.SourceChannel{
				Name: filepath.Base(file),
				Type: "json",
				Path: file,
			})
		}
	}
	return append(channels, r.cfg.Channels...), nil
}

func (r *articleRepository) loadChannel(ctx context.Context, channel config.SourceChannel) (*SourceBatch, error) {
	switch strings.ToLower(channel.Type) {
	case "", "json":
		return r.loadJSONFile(channel)
	case "rss":
		return r.loadFeed(ctx, channel)
	default:
		return nil, fmt.Errorf("unknown channel type %q", channel.Type)
	}
}

func (r *articleRepository) loadJSONFile(channel config.SourceChannel) (*SourceBatch, error) {
	data, err := os.ReadFile(channel.Path)
	if err != nil {
		return nil, err
	}

	articles, err := decodeArticles(data)
	if err != nil {
		return nil, err
	}

	// Scoring runs over cleaned text; the original fields still pass
	// through to the report untouched.
	for i := range articles {
		articles[i].Content = r.extractor.Normalize(utils.CleanToValidUTF8(articles[i].Content))
	}
	return &SourceBatch{Name: channel.Name, Articles: articles}, nil
}

func (r *articleRepository) loadFeed(ctx context.Context, channel config.SourceChannel) (*SourceBatch, error) {
	feed, err := r.parseFeed(ctx, channel)
	if err != nil {
		return nil, err
	}

	articles := make([]entity.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		content := item.Content
		if content == "" {
			content = item.Description
		}
		articles = append(articles, entity.Article{
			Title:         utils.SafeText(item.Title),
			Content:       r.extractor.Normalize(utils.CleanToValidUTF8(content)),
			Source:        channel.Name,
			PublishedTime: item.Published,
			URL:           item.Link,
		})
	}
	return &SourceBatch{Name: channel.Name, Articles: articles}, nil
}

func (r *articleRepository) parseFeed(ctx context.Context, channel config.SourceChannel) (*gofeed.Feed, error) {
	if channel.URL != "" {
		return r.parser.ParseURLWithContext(channel.URL, ctx)
	}
	f, err := os.Open(channel.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.parser.Parse(f)
}

// decodeArticles accepts both collector dump shapes: a bare article list
// or an object wrapping it in an articles field.
func decodeArticles(data []byte) ([]entity.Article, error) {
	var list []entity.Article
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Articles []entity.Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	if wrapped.Articles == nil {
		return nil, errors.New("no articles field found")
	}
	return wrapped.Articles, nil
}
