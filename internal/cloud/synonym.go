package cloud

import (
	"context"
	"fmt"
)

// SynonymCloud renders like a static cloud but swaps its seed vocabulary
// for the synonym expansion during LoadData. Duplicates in the expansion
// survive: a synonym shared by several seed words appears several times.
type SynonymCloud struct {
	StaticCloud
}

// NewSynonym builds a synonym cloud over the given seed words.
func NewSynonym(name, surface string, seed []string, size float64) *SynonymCloud {
	return &SynonymCloud{StaticCloud: *NewStatic(name, surface, seed, size)}
}

func (c *SynonymCloud) LoadData(ctx context.Context, client Enricher) error {
	expanded, err := client.Synonyms(ctx, c.words)
	if err != nil {
		return fmt.Errorf("expanding cloud %s: %w", c.name, err)
	}
	c.logger.Info("synonyms expanded", "seed_words", len(c.words), "expanded_words", len(expanded))
	c.words = []string(expanded)
	return nil
}
