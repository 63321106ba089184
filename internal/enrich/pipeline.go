// internal/enrich/pipeline.go
package enrich

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/madeinfrance/mif-backend/internal/config"
	"github.com/madeinfrance/mif-backend/internal/models"
	"github.com/madeinfrance/mif-backend/internal/services"
)

const systemPrompt = `You classify products from French "Made in France" brands.
Reply with a single JSON object and nothing else:
{"tags": ["..."], "materials": ["..."], "attributes": {"...": "..."}}
Tags are short lowercase French keywords (max 8). Materials name what the
product is made of. Attributes hold anything else notable (care, origin,
certification). Use empty arrays when unsure, never invent facts.`

// Pipeline walks products that still lack tags and asks the model to fill
// them in.
type Pipeline struct {
	products  *services.ProductService
	client    *Client
	batchSize int
	delay     time.Duration
}

type PipelineResult struct {
	Processed int
	Enriched  int
	Failed    int
}

func NewPipeline(products *services.ProductService, cfg config.AIConfig) *Pipeline {
	return &Pipeline{
		products:  products,
		client:    NewClient(cfg),
		batchSize: cfg.BatchSize,
		delay:     time.Duration(cfg.DelayMillis) * time.Millisecond,
	}
}

// Run enriches up to one batch of candidates. A failed product is logged and
// counted; the batch keeps going.
func (p *Pipeline) Run() (*PipelineResult, error) {
	candidates, err := p.products.EnrichmentCandidates(p.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrichment candidates: %w", err)
	}

	result := &PipelineResult{}
	for i, product := range candidates {
		result.Processed++

		payload, err := p.enrichOne(&product)
		if err != nil {
			logrus.WithField("product", product.Slug).WithError(err).Warn("Enrichment failed")
			result.Failed++
		} else {
			if err := p.products.ApplyEnrichment(product.ID, payload.Tags, payload.Materials, payload.Attributes); err != nil {
				return result, fmt.Errorf("failed to store enrichment for %s: %w", product.Slug, err)
			}
			result.Enriched++
		}

		if i < len(candidates)-1 {
			time.Sleep(p.delay)
		}
	}

	return result, nil
}

func (p *Pipeline) enrichOne(product *models.Product) (*Payload, error) {
	reply, err := p.client.Complete(systemPrompt, buildPrompt(product))
	if err != nil {
		return nil, err
	}
	return ParsePayload(reply)
}

func buildPrompt(product *models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\n", product.Name)
	if product.Brand != nil {
		fmt.Fprintf(&b, "Brand: %s\n", product.Brand.Name)
	}
	if product.ShortDescription != "" {
		fmt.Fprintf(&b, "Description: %s\n", product.ShortDescription)
	} else if product.LongDescription != "" {
		fmt.Fprintf(&b, "Description: %s\n", product.LongDescription)
	}
	return b.String()
}
