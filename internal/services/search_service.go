package services

import (
	"log"
	"strings"

	"saarthi/internal/database"
	"saarthi/internal/models"

	"gorm.io/gorm"
)

type SearchResult struct {
	LeadID uint    `json:"lead_id"`
	Score  float64 `json:"score"`
	Rank   float64 `json:"rank"`
}

type SearchService struct {
	db *gorm.DB
}

func NewSearchService() *SearchService {
	return &SearchService{
		db: database.GetDB(),
	}
}

// SearchLeads performs advanced search with ranking and fuzzy matching,
// scoped to a single advisor's book
func (s *SearchService) SearchLeads(advisorID uint, searchTerm string, limit int, offset int) ([]models.Lead, error) {
	if strings.TrimSpace(searchTerm) == "" {
		return []models.Lead{}, nil
	}

	// Clean and prepare search term
	cleanTerm := strings.TrimSpace(searchTerm)

	// Multi-strategy search results
	var results []SearchResult

	// Strategy 1: Full-Text Search with ranking (highest priority)
	ftsResults, err := s.fullTextSearch(advisorID, cleanTerm, limit)
	if err != nil {
		log.Printf("FTS search error: %v", err)
	} else {
		results = append(results, ftsResults...)
	}

	// Strategy 2: Fuzzy matching for typos (medium priority)
	fuzzyResults, err := s.fuzzySearch(advisorID, cleanTerm)
	if err != nil {
		log.Printf("Fuzzy search error: %v", err)
	} else {
		results = append(results, fuzzyResults...)
	}

	// Strategy 3: Partial matching fallback (lowest priority)
	partialResults, err := s.partialSearch(advisorID, cleanTerm)
	if err != nil {
		log.Printf("Partial search error: %v", err)
	} else {
		results = append(results, partialResults...)
	}

	// Combine and deduplicate results
	combinedResults := s.combineAndRankResults(results)

	// Apply pagination
	start := offset
	end := offset + limit
	if start >= len(combinedResults) {
		return []models.Lead{}, nil
	}
	if end > len(combinedResults) {
		end = len(combinedResults)
	}
	combinedResults = combinedResults[start:end]

	return s.hydrateLeads(combinedResults)
}

// fullTextSearch performs PostgreSQL full-text search over name, notes and
// insurance type
func (s *SearchService) fullTextSearch(advisorID uint, searchTerm string, limit int) ([]SearchResult, error) {
	cleanTerm := strings.TrimSpace(searchTerm)
	if cleanTerm == "" {
		return []SearchResult{}, nil
	}

	tsqueryTerm := s.prepareSearchQuery(cleanTerm)
	if tsqueryTerm == "" {
		return []SearchResult{}, nil
	}

	var results []SearchResult

	query := `
		SELECT id,
		       ts_rank_cd(
		           to_tsvector('english', full_name || ' ' || coalesce(insurance_type, '') || ' ' || coalesce(notes, '')),
		           to_tsquery('english', ?), 1
		       ) as fts_rank
		FROM "lead"
		WHERE to_tsvector('english', full_name || ' ' || coalesce(insurance_type, '') || ' ' || coalesce(notes, ''))
		      @@ to_tsquery('english', ?)
		  AND advisor_id = ?
		  AND deleted_at IS NULL
		ORDER BY fts_rank DESC
		LIMIT ?
	`

	rows, err := s.db.Raw(query, tsqueryTerm, tsqueryTerm, advisorID, limit).Rows()
	if err != nil {
		log.Printf("FTS search error: %v", err)
		return []SearchResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint
		var rank float64

		if err := rows.Scan(&id, &rank); err != nil {
			log.Printf("Error scanning FTS result: %v", err)
			continue
		}

		results = append(results, SearchResult{
			LeadID: id,
			Score:  rank * 100, // High priority for FTS
			Rank:   rank,
		})
	}

	return results, nil
}

// fuzzySearch performs fuzzy matching using pg_trgm for typos
func (s *SearchService) fuzzySearch(advisorID uint, searchTerm string) ([]SearchResult, error) {
	var results []SearchResult

	query := `
		SELECT id,
		       GREATEST(
		           similarity(full_name, $1),
		           similarity(coalesce(insurance_type, ''), $1),
		           similarity(coalesce(company_name, ''), $1)
		       ) as fuzzy_score
		FROM "lead"
		WHERE (
		       full_name % $1 OR
		       insurance_type % $1 OR
		       company_name % $1
		   )
		   AND advisor_id = $2
		   AND deleted_at IS NULL
		   AND GREATEST(
		       similarity(full_name, $1),
		       similarity(coalesce(insurance_type, ''), $1),
		       similarity(coalesce(company_name, ''), $1)
		   ) > 0.3
		ORDER BY fuzzy_score DESC
		LIMIT 30
	`

	rows, err := s.db.Raw(query, searchTerm, advisorID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint
		var similarity float64

		if err := rows.Scan(&id, &similarity); err != nil {
			log.Printf("Error scanning fuzzy result: %v", err)
			continue
		}

		results = append(results, SearchResult{
			LeadID: id,
			Score:  similarity * 50, // Medium priority for fuzzy
			Rank:   similarity,
		})
	}

	return results, nil
}

// partialSearch performs partial matching as fallback
func (s *SearchService) partialSearch(advisorID uint, searchTerm string) ([]SearchResult, error) {
	var results []SearchResult

	searchPattern := "%" + strings.ToLower(searchTerm) + "%"

	query := `
		SELECT id,
		       CASE
		           WHEN LOWER(full_name) LIKE $1 THEN 3
		           WHEN LOWER(phone_number) LIKE $1 THEN 2.5
		           WHEN LOWER(insurance_type) LIKE $1 THEN 2
		           WHEN LOWER(notes) LIKE $1 THEN 1
		           ELSE 0.5
		       END as partial_score
		FROM "lead"
		WHERE (
		       LOWER(full_name) LIKE $1 OR
		       LOWER(phone_number) LIKE $1 OR
		       LOWER(insurance_type) LIKE $1 OR
		       LOWER(notes) LIKE $1 OR
		       LOWER(policy_number) LIKE $1
		   )
		   AND advisor_id = $2
		   AND deleted_at IS NULL
		ORDER BY partial_score DESC
		LIMIT 20
	`

	rows, err := s.db.Raw(query, searchPattern, advisorID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint
		var score float64

		if err := rows.Scan(&id, &score); err != nil {
			log.Printf("Error scanning partial result: %v", err)
			continue
		}

		results = append(results, SearchResult{
			LeadID: id,
			Score:  score * 10, // Low priority for partial
			Rank:   score,
		})
	}

	return results, nil
}

// prepareSearchQuery converts user input to tsquery format
func (s *SearchService) prepareSearchQuery(searchTerm string) string {
	// Clean and split terms
	terms := strings.Fields(strings.ToLower(searchTerm))
	if len(terms) == 0 {
		return ""
	}

	// Handle single word
	if len(terms) == 1 {
		return terms[0] + ":*" // Prefix matching
	}

	// Handle multiple words - use OR logic for broader, more user-friendly results
	processedTerms := make([]string, len(terms))
	for i, term := range terms {
		processedTerms[i] = term + ":*"
	}

	return strings.Join(processedTerms, " | ") // OR logic for better coverage
}

// combineAndRankResults merges results from different strategies and removes duplicates
func (s *SearchService) combineAndRankResults(results []SearchResult) []SearchResult {
	// Group by lead ID and take the best score
	leadMap := make(map[uint]SearchResult)

	for _, result := range results {
		existing, exists := leadMap[result.LeadID]
		if !exists || result.Score > existing.Score {
			leadMap[result.LeadID] = result
		}
	}

	// Convert back to slice and sort by score
	var finalResults []SearchResult
	for _, result := range leadMap {
		finalResults = append(finalResults, result)
	}

	// Sort by score descending
	for i := 0; i < len(finalResults)-1; i++ {
		for j := i + 1; j < len(finalResults); j++ {
			if finalResults[i].Score < finalResults[j].Score {
				finalResults[i], finalResults[j] = finalResults[j], finalResults[i]
			}
		}
	}

	return finalResults
}

// hydrateLeads loads the full lead rows for the ranked IDs, preserving order
func (s *SearchService) hydrateLeads(results []SearchResult) ([]models.Lead, error) {
	if len(results) == 0 {
		return []models.Lead{}, nil
	}

	ids := make([]uint, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.LeadID)
	}

	var rows []models.Lead
	if err := s.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Lead, len(rows))
	for _, l := range rows {
		byID[l.ID] = l
	}

	var leads []models.Lead
	for _, r := range results {
		if l, ok := byID[r.LeadID]; ok {
			leads = append(leads, l)
		}
	}

	return leads, nil
}
