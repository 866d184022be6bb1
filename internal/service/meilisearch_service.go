package service

import (
	"encoding/json"
	"html"
	"log"
	"strconv"
	"strings"

	"anoa.com/signcollect/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// MeiliSearchService keeps the gloss dictionary index in sync and answers
// full-text dictionary queries. All methods tolerate an unreachable search
// backend; indexing errors are logged and listing falls back to SQL.
type MeiliSearchService interface {
	IndexGloss(gloss *model.Gloss) error
	DeleteGloss(id uint) error
	// SearchGlossIDs returns matching gloss ids in relevance order, plus the
	// estimated total.
	SearchGlossIDs(query string, limit, offset int) ([]uint, int64, error)
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"gloss_type", "category_ids"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("glosses").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update glosses filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "text"}
	_, err = s.client.Index("glosses").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update glosses sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliGlossDoc struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	GlossType   int    `json:"gloss_type"`
	CategoryIDs []uint `json:"category_ids"`
	CreatedAt   int64  `json:"created_at"`
}

// cleanText strips markup and collapses whitespace so pasted rich text never
// pollutes the dictionary index.
func (s *meiliSearchService) cleanText(text string) string {
	sanitized := s.sanitizer.Sanitize(text)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) IndexGloss(gloss *model.Gloss) error {
	categoryIDs := make([]uint, 0, len(gloss.Categories))
	for _, c := range gloss.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}

	doc := meiliGlossDoc{
		ID:          gloss.ID,
		Text:        s.cleanText(gloss.Text),
		GlossType:   int(gloss.GlossType),
		CategoryIDs: categoryIDs,
		CreatedAt:   gloss.CreatedAt.Unix(),
	}

	task, err := s.client.Index("glosses").AddDocuments([]meiliGlossDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed gloss %d, task id: %d", gloss.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteGloss(id uint) error {
	_, err := s.client.Index("glosses").DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

func (s *meiliSearchService) SearchGlossIDs(query string, limit, offset int) ([]uint, int64, error) {
	res, err := s.client.Index("glosses").Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if id, ok := glossIDFromHit(hit); ok {
			ids = append(ids, id)
		}
	}
	return ids, res.EstimatedTotalHits, nil
}

// glossIDFromHit decodes the document id out of a raw search hit.
func glossIDFromHit(hit meilisearch.Hit) (uint, bool) {
	raw, ok := hit["id"]
	if !ok {
		return 0, false
	}
	var id uint
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, false
	}
	return id, true
}

func strPtr(s string) *string {
	return &s
}
