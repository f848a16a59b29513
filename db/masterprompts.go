package db

import "database/sql"

// UpsertMasterPrompt inserts or replaces the master prompt for a target path
func UpsertMasterPrompt(m *MasterPrompt) error {
	m.UpdatedAt = NowMs()
	_, err := Run(`
		INSERT INTO master_prompts (page_file_path, nlp_instruction, sections_summary, query_examples, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(page_file_path) DO UPDATE SET
			nlp_instruction = excluded.nlp_instruction,
			sections_summary = excluded.sections_summary,
			query_examples = excluded.query_examples,
			updated_at = excluded.updated_at
	`, m.PageFilePath, m.NLPInstruction, m.SectionsSummary, m.QueryExamples, m.UpdatedAt)
	return err
}

// GetMasterPrompt retrieves the master prompt for a target path
func GetMasterPrompt(pageFilePath string) (*MasterPrompt, error) {
	row := GetDB().QueryRow(`
		SELECT page_file_path, nlp_instruction, sections_summary, query_examples, updated_at
		FROM master_prompts
		WHERE page_file_path = ?
	`, pageFilePath)

	var m MasterPrompt
	err := row.Scan(&m.PageFilePath, &m.NLPInstruction, &m.SectionsSummary, &m.QueryExamples, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMasterPrompts returns all master prompts ordered by target path
func ListMasterPrompts() ([]MasterPrompt, error) {
	rows, err := GetDB().Query(`
		SELECT page_file_path, nlp_instruction, sections_summary, query_examples, updated_at
		FROM master_prompts
		ORDER BY page_file_path ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []MasterPrompt
	for rows.Next() {
		var m MasterPrompt
		if err := rows.Scan(&m.PageFilePath, &m.NLPInstruction, &m.SectionsSummary, &m.QueryExamples, &m.UpdatedAt); err != nil {
			return nil, err
		}
		prompts = append(prompts, m)
	}
	return prompts, rows.Err()
}

// ListMasterPromptPaths returns the target paths of all master prompts.
// The differ uses this to keep master targets out of the disk path set.
func ListMasterPromptPaths() ([]string, error) {
	rows, err := GetDB().Query("SELECT page_file_path FROM master_prompts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
