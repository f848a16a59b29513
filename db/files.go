package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// GetFileByPath retrieves a file record by path
func GetFileByPath(path string) (*FileRecord, error) {
	query := `
		SELECT path, name, prompt_file_path, raw_content, total_lines,
			   has_code, has_prompt, created_at, updated_at
		FROM files
		WHERE path = ?
	`

	row := GetDB().QueryRow(query, path)

	f, err := scanFileRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func scanFileRecord(row interface{ Scan(...any) error }) (FileRecord, error) {
	var f FileRecord
	var promptFilePath sql.NullString
	var hasCode, hasPrompt int

	err := row.Scan(
		&f.Path, &f.Name, &promptFilePath, &f.RawContent, &f.TotalLines,
		&hasCode, &hasPrompt, &f.CreatedAt, &f.UpdatedAt,
	)
	f.PromptFilePath = StringPtr(promptFilePath)
	f.HasCode = hasCode == 1
	f.HasPrompt = hasPrompt == 1
	return f, err
}

// ReplaceFileWithSections deletes any existing record at the file's path
// and recreates it together with its sections and prompts, all in one
// transaction. Each call is an independent per-file upsert; there is no
// transaction spanning multiple files of a re-seed batch.
func ReplaceFileWithSections(f *FileRecord, sections []SectionRecord) error {
	return Transaction(func(tx *sql.Tx) error {
		if err := deleteFileTx(tx, f.Path); err != nil {
			return err
		}

		now := NowMs()
		if f.CreatedAt == 0 {
			f.CreatedAt = now
		}
		f.UpdatedAt = now

		hasCode, hasPrompt := 0, 0
		if f.HasCode {
			hasCode = 1
		}
		if f.HasPrompt {
			hasPrompt = 1
		}

		_, err := tx.Exec(`
			INSERT INTO files (path, name, prompt_file_path, raw_content, total_lines,
							   has_code, has_prompt, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, f.Path, f.Name, NullString(f.PromptFilePath), f.RawContent, f.TotalLines,
			hasCode, hasPrompt, f.CreatedAt, f.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert file: %w", err)
		}

		for si, sec := range sections {
			sectionID := uuid.NewString()
			_, err := tx.Exec(`
				INSERT INTO sections (id, file_path, position, name, start_line, end_line, purpose)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, sectionID, f.Path, si, sec.Name, sec.StartLine, sec.EndLine, sec.Purpose)
			if err != nil {
				return fmt.Errorf("failed to insert section: %w", err)
			}

			for pi, p := range sec.Prompts {
				_, err := tx.Exec(`
					INSERT INTO prompts (id, section_id, position, template, example, line_number, prompt_type)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`, uuid.NewString(), sectionID, pi, p.Template, p.Example, p.LineNumber, p.PromptType)
				if err != nil {
					return fmt.Errorf("failed to insert prompt: %w", err)
				}
			}
		}

		return nil
	})
}

// ReplaceCodeOnlyFile deletes and recreates a record for a code file that
// has no prompt file (no sections are stored)
func ReplaceCodeOnlyFile(f *FileRecord) error {
	return ReplaceFileWithSections(f, nil)
}

// deleteFileTx removes a file and its sections/prompts inside a transaction
func deleteFileTx(tx *sql.Tx, path string) error {
	if _, err := tx.Exec(`
		DELETE FROM prompts
		WHERE section_id IN (SELECT id FROM sections WHERE file_path = ?)
	`, path); err != nil {
		return fmt.Errorf("failed to delete prompts: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM sections WHERE file_path = ?", path); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM files WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// DeleteFileWithCascade removes a file record and all related records
// (sections, prompts, search documents) in a single transaction
func DeleteFileWithCascade(path string) error {
	return Transaction(func(tx *sql.Tx) error {
		if err := deleteFileTx(tx, path); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM search_documents WHERE file_path = ?", path); err != nil {
			return fmt.Errorf("failed to delete search_documents: %w", err)
		}

		return nil
	})
}

// GetSectionsForFile returns a file's sections with their prompts, in
// stored order
func GetSectionsForFile(path string) ([]SectionRecord, error) {
	rows, err := GetDB().Query(`
		SELECT id, file_path, position, name, start_line, end_line, purpose
		FROM sections
		WHERE file_path = ?
		ORDER BY position ASC
	`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []SectionRecord
	for rows.Next() {
		var s SectionRecord
		if err := rows.Scan(&s.ID, &s.FilePath, &s.Position, &s.Name, &s.StartLine, &s.EndLine, &s.Purpose); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sections {
		prompts, err := getPromptsForSection(sections[i].ID)
		if err != nil {
			return nil, err
		}
		sections[i].Prompts = prompts
	}

	return sections, nil
}

func getPromptsForSection(sectionID string) ([]PromptRecord, error) {
	rows, err := GetDB().Query(`
		SELECT id, section_id, position, template, example, line_number, prompt_type
		FROM prompts
		WHERE section_id = ?
		ORDER BY position ASC
	`, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []PromptRecord
	for rows.Next() {
		var p PromptRecord
		if err := rows.Scan(&p.ID, &p.SectionID, &p.Position, &p.Template, &p.Example, &p.LineNumber, &p.PromptType); err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// FileWithSections represents a file record with its parsed sections
type FileWithSections struct {
	FileRecord
	Sections []SectionRecord `json:"sections"`
}

// GetFileWithSections retrieves a file together with its sections and prompts
func GetFileWithSections(path string) (*FileWithSections, error) {
	file, err := GetFileByPath(path)
	if err != nil || file == nil {
		return nil, err
	}

	sections, err := GetSectionsForFile(path)
	if err != nil {
		return nil, err
	}

	return &FileWithSections{
		FileRecord: *file,
		Sections:   sections,
	}, nil
}

// ListFiles returns all file records ordered by path, without raw content
func ListFiles() ([]FileRecord, error) {
	rows, err := GetDB().Query(`
		SELECT path, name, prompt_file_path, '', total_lines,
			   has_code, has_prompt, created_at, updated_at
		FROM files
		ORDER BY path ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		f, err := scanFileRecord(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// ListSyncEntries returns the projection of all file records consumed by
// the sync differ
func ListSyncEntries() ([]SyncEntry, error) {
	rows, err := GetDB().Query("SELECT path, prompt_file_path, updated_at FROM files")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SyncEntry
	for rows.Next() {
		var e SyncEntry
		var promptFilePath sql.NullString
		if err := rows.Scan(&e.Path, &promptFilePath, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.PromptFilePath = StringPtr(promptFilePath)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetFileStats returns aggregate counts for the dashboard
func GetFileStats() (map[string]any, error) {
	stats := make(map[string]any)

	counts := []struct {
		key   string
		query string
	}{
		{"totalFiles", "SELECT COUNT(*) FROM files"},
		{"filesWithPrompt", "SELECT COUNT(*) FROM files WHERE has_prompt = 1"},
		{"totalSections", "SELECT COUNT(*) FROM sections"},
		{"totalPrompts", "SELECT COUNT(*) FROM prompts"},
		{"masterPrompts", "SELECT COUNT(*) FROM master_prompts"},
	}

	for _, c := range counts {
		n, err := Count(c.query)
		if err != nil {
			return nil, err
		}
		stats[c.key] = n
	}

	return stats, nil
}
