package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "os"
    "strings"
    "time"

    "github.com/segmentio/kafka-go"
)

// A tiny helper to import a garment feed (JSON array) into the search index
// by publishing sync events to Kafka, the same pipeline the catalog API uses.
// Usage:
//   go run ./tools/garmentimport \
//     -brokers "localhost:9092" \
//     -topic   "garment-sync" \
//     -file    "garments.json"
func main() {
    brokers := flag.String("brokers", "localhost:9092", "comma separated Kafka broker list")
    topic := flag.String("topic", "garment-sync", "Kafka topic for garment sync events")
    file := flag.String("file", "", "path to a JSON array of garments")
    batch := flag.Int("batch", 500, "messages per publish call")
    flag.Parse()

    if *file == "" {
        log.Fatal("-file is required")
    }

    raw, err := os.ReadFile(*file)
    if err != nil {
        log.Fatalf("read feed: %v", err)
    }

    var feed []garment
    if err := json.Unmarshal(raw, &feed); err != nil {
        log.Fatalf("decode feed: %v", err)
    }

    w := &kafka.Writer{
        Addr:                   kafka.TCP(strings.Split(*brokers, ",")...),
        Topic:                  *topic,
        RequiredAcks:           kafka.RequireOne,
        Balancer:               &kafka.LeastBytes{},
        AllowAutoTopicCreation: true,
        BatchTimeout:           5 * time.Millisecond,
    }
    defer w.Close()

    ctx := context.Background()
    published, skipped := 0, 0
    msgs := make([]kafka.Message, 0, *batch)

    flush := func() {
        if len(msgs) == 0 {
            return
        }
        if err := w.WriteMessages(ctx, msgs...); err != nil {
            log.Fatalf("publish batch: %v", err)
        }
        published += len(msgs)
        msgs = msgs[:0]
    }

    for _, g := range feed {
        evt, ok := g.toEvent()
        if !ok {
            skipped++
            continue
        }
        value, err := json.Marshal(evt)
        if err != nil {
            log.Fatalf("encode event %s: %v", evt.Id, err)
        }
        msgs = append(msgs, kafka.Message{Key: []byte(evt.Id), Value: value})
        if len(msgs) >= *batch {
            flush()
        }
    }
    flush()

    fmt.Printf("Published %d garment events to %s (%d records skipped).\n", published, *topic, skipped)
}

type garment struct {
    Id           string  `json:"id"`
    Title        string  `json:"title"`
    Description  string  `json:"description"`
    Url          string  `json:"url"`
    ImageLink    string  `json:"image_link"`
    Brand        string  `json:"brand"`
    Material     string  `json:"material"`
    Color        string  `json:"color"`
    Gender       string  `json:"gender"`
    MainCategory string  `json:"main_category"`
    Price        float64 `json:"price"`
    UpdatedAt    int64   `json:"updated_at"`
}

// event mirrors the payload the indexer consumes, see app/services/indexer.
type event struct {
    Op           string  `json:"op"`
    Id           string  `json:"id"`
    Title        string  `json:"title"`
    Description  string  `json:"description"`
    Url          string  `json:"url"`
    ImageLink    string  `json:"image_link"`
    Brand        string  `json:"brand"`
    Material     string  `json:"material"`
    Color        string  `json:"color"`
    Gender       string  `json:"gender"`
    MainCategory string  `json:"main_category"`
    Price        float64 `json:"price"`
    UpdatedAt    int64   `json:"updated_at"`
}

func (g garment) toEvent() (*event, bool) {
    id := strings.TrimSpace(g.Id)
    title := strings.TrimSpace(g.Title)
    if id == "" || title == "" || g.Price < 0 {
        return nil, false
    }

    updatedAt := g.UpdatedAt
    if updatedAt <= 0 {
        updatedAt = time.Now().Unix()
    }

    return &event{
        Op:           "UPSERT",
        Id:           id,
        Title:        title,
        Description:  strings.TrimSpace(g.Description),
        Url:          strings.TrimSpace(g.Url),
        ImageLink:    strings.TrimSpace(g.ImageLink),
        Brand:        strings.TrimSpace(g.Brand),
        Material:     strings.TrimSpace(g.Material),
        Color:        strings.TrimSpace(g.Color),
        Gender:       strings.ToLower(strings.TrimSpace(g.Gender)),
        MainCategory: strings.ToLower(strings.TrimSpace(g.MainCategory)),
        Price:        g.Price,
        UpdatedAt:    updatedAt,
    }, true
}
