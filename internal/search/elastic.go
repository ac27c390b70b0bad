package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

const productIndex = "products"

var ErrUnavailable = errors.New("search is not configured")

// Index wraps the Elasticsearch product index. A nil *Index degrades
// gracefully: indexing becomes a no-op and queries report ErrUnavailable,
// so the shop runs fine without a search cluster.
type Index struct {
	client *elasticsearch.Client
}

// Connect returns nil (no error) when ELASTIC_URL is unset.
func Connect() (*Index, error) {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️  ELASTIC_URL not set, product search disabled")
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %v", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch ping: %v", err)
	}
	res.Body.Close()

	log.Println("✅ Connected to Elasticsearch")
	return &Index{client: client}, nil
}

// IndexProduct upserts a product document. Called after admin writes;
// failures are logged, catalog writes never depend on the index.
func (i *Index) IndexProduct(ctx context.Context, p models.Product) {
	if i == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("❌ Could not serialize product %s for indexing: %v", p.ID, err)
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		log.Printf("❌ Could not index product %s: %v", p.Name, err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️  Elasticsearch rejected product %s: %s", p.Name, res.String())
	}
}

// Products runs a multi-match query over name, description and sku.
func (i *Index) Products(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if i == nil {
		return nil, ErrUnavailable
	}

	var buf bytes.Buffer
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "sku"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, fmt.Errorf("search request: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
