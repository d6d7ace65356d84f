package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"StylistAI/app/api/stylist/internal/stylist/outfit"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	defaultLimit         = 20
	defaultNumCandidates = 100
)

// Searcher 基于向量索引为各品类检索候选单品
type Searcher struct {
	log           logx.Logger
	client        *elasticsearch.Client
	embedder      embedding.Embedder
	index         string
	limit         int
	numCandidates int
}

// Option 调整检索参数
type Option func(*Searcher)

// WithLimit 设置每个品类返回的候选数上限
func WithLimit(limit int) Option {
	return func(s *Searcher) {
		if limit <= 0 {
			return
		}
		s.limit = limit
		// num_candidates 不能小于 k
		if s.numCandidates < limit {
			s.numCandidates = limit * 5
		}
	}
}

func NewSearcher(log logx.Logger, client *elasticsearch.Client, embedder embedding.Embedder, index string, opts ...Option) *Searcher {
	s := &Searcher{
		log:           log,
		client:        client,
		embedder:      embedder,
		index:         index,
		limit:         defaultLimit,
		numCandidates: defaultNumCandidates,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrieve 逐品类检索候选列表, 返回顺序与入参一致
func (s *Searcher) Retrieve(ctx context.Context, reqs []outfit.CategoryRequest, gender string, budget *outfit.Budget) ([][]outfit.Candidate, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch client unavailable")
	}
	if s.embedder == nil {
		return nil, fmt.Errorf("embedding model unavailable")
	}

	texts := make([]string, len(reqs))
	for i, req := range reqs {
		texts[i] = req.Description
	}

	vectors, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed category queries: %w", err)
	}
	if len(vectors) != len(reqs) {
		return nil, fmt.Errorf("embedding count mismatch, expect %d got %d", len(reqs), len(vectors))
	}

	out := make([][]outfit.Candidate, len(reqs))
	for i, req := range reqs {
		candidates, err := s.searchCategory(ctx, vectors[i], req, gender, budget)
		if err != nil {
			return nil, fmt.Errorf("search category %s: %w", req.Category, err)
		}
		s.log.Infow("garment candidates retrieved",
			logx.Field("category", req.Category),
			logx.Field("hits", len(candidates)))
		out[i] = candidates
	}
	return out, nil
}

func (s *Searcher) searchCategory(ctx context.Context, vector []float64, req outfit.CategoryRequest, gender string, budget *outfit.Budget) ([]outfit.Candidate, error) {
	body, err := json.Marshal(buildSearchBody(vector, req, gender, budget, s.limit, s.numCandidates))
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return nil, fmt.Errorf("es search status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}

	return decodeCandidates(respBody)
}
