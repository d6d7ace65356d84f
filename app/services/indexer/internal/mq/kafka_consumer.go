package mq

import (
	"StylistAI/app/services/indexer/internal/svc"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

func StartGarmentSyncConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	if len(sc.Config.KafkaConf.Brokers) == 0 || sc.Config.KafkaConf.GarmentSyncTopic == "" || sc.Config.KafkaConf.Group == "" {
		logx.Infow("skip garment sync consumer, kafka config missing")
		return nil
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     sc.Config.KafkaConf.Brokers,
		GroupID:     sc.Config.KafkaConf.Group,
		Topic:       sc.Config.KafkaConf.GarmentSyncTopic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     50 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})
	defer r.Close()

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logx.Errorw("fetch garment message failed", logx.Field("err", err))
			continue
		}

		var evt GarmentSyncEvent
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			logx.Errorw("unmarshal garment message failed", logx.Field("err", err))
		} else {
			handleGarmentSyncEvent(ctx, sc, evt)
		}

		if err := r.CommitMessages(ctx, m); err != nil {
			logx.Errorw("commit garment message failed", logx.Field("err", err))
		}
	}
}

func handleGarmentSyncEvent(ctx context.Context, sc *svc.ServiceContext, evt GarmentSyncEvent) {
	if sc.ESClient == nil {
		logx.Infow("skip garment event, elasticsearch client unavailable")
		return
	}

	docID := strings.TrimSpace(evt.Id)
	if docID == "" {
		logx.Errorw("skip garment event, empty id", logx.Field("op", evt.Op))
		return
	}

	indexName := sc.GarmentIndexName()
	switch strings.ToUpper(evt.Op) {
	case "DELETE":
		if err := deleteGarmentDocument(ctx, sc, indexName, docID); err != nil {
			logx.Errorw("delete garment document failed", logx.Field("id", docID), logx.Field("err", err))
		}
	default:
		if err := upsertGarmentDocument(ctx, sc, indexName, docID, evt); err != nil {
			logx.Errorw("upsert garment document failed", logx.Field("id", docID), logx.Field("err", err))
		}
	}
}

func upsertGarmentDocument(ctx context.Context, sc *svc.ServiceContext, indexName, docID string, evt GarmentSyncEvent) error {
	doc := map[string]any{
		"title":         evt.Title,
		"description":   evt.Description,
		"url":           evt.Url,
		"image_link":    evt.ImageLink,
		"brand":         evt.Brand,
		"material":      evt.Material,
		"color":         evt.Color,
		"gender":        strings.ToLower(strings.TrimSpace(evt.Gender)),
		"main_category": evt.MainCategory,
		"price":         evt.Price,
	}

	if evt.UpdatedAt > 0 {
		doc["updated_at"] = time.Unix(evt.UpdatedAt, 0).UTC().Format(time.RFC3339)
	}

	if sc.VectorIndexEnabled() {
		if embedding, err := buildGarmentEmbedding(ctx, sc, evt); err != nil {
			logx.Errorw("compute garment embedding failed", logx.Field("id", docID), logx.Field("err", err))
		} else if len(embedding) > 0 {
			doc["embedding"] = embedding
		}
	}

	payload := map[string]any{
		"doc":           doc,
		"doc_as_upsert": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode garment document: %w", err)
	}

	res, err := sc.ESClient.Update(indexName, docID, bytes.NewReader(body), sc.ESClient.Update.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es update call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return fmt.Errorf("es update status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}

	return nil
}

func deleteGarmentDocument(ctx context.Context, sc *svc.ServiceContext, indexName, docID string) error {
	res, err := sc.ESClient.Delete(indexName, docID, sc.ESClient.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es delete call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}

	return nil
}

func buildGarmentEmbedding(ctx context.Context, sc *svc.ServiceContext, evt GarmentSyncEvent) ([]float64, error) {
	if sc.Embedder == nil {
		return nil, nil
	}

	// 嵌入文本只拼语义字段, 与检索侧的品类描述保持同一语义空间
	textParts := []string{
		evt.Title,
		evt.Description,
		evt.Color,
		evt.Material,
		evt.Brand,
		evt.MainCategory,
	}
	text := strings.TrimSpace(strings.Join(textParts, " "))
	if text == "" {
		text = evt.Id
	}

	embeds, err := sc.Embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeds) == 0 || len(embeds[0]) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	if expected := sc.EmbeddingDimension(); expected > 0 && len(embeds[0]) != expected {
		return nil, fmt.Errorf("embedding dimension mismatch, expect %d got %d", expected, len(embeds[0]))
	}
	return embeds[0], nil
}
