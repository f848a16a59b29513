package db

import (
	"database/sql"
)

func init() {
	RegisterMigration(Migration{
		Version:     1,
		Description: "Initial schema",
		Up:          migration001_initial,
	})
}

func migration001_initial(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Files table. One row per target code file, keyed by project-relative
	// path with forward slashes.
	_, err = tx.Exec(`
		CREATE TABLE files (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			prompt_file_path TEXT,
			raw_content TEXT NOT NULL DEFAULT '',
			total_lines INTEGER NOT NULL DEFAULT 0,
			has_code INTEGER NOT NULL DEFAULT 0,
			has_prompt INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX idx_files_prompt_file_path ON files(prompt_file_path);
		CREATE INDEX idx_files_updated_at ON files(updated_at);
	`)
	if err != nil {
		return err
	}

	// Sections and prompts, ordered by position within their parent
	_, err = tx.Exec(`
		CREATE TABLE sections (
			id TEXT PRIMARY KEY,
			file_path TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			purpose TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX idx_sections_file_path ON sections(file_path);

		CREATE TABLE prompts (
			id TEXT PRIMARY KEY,
			section_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			template TEXT NOT NULL,
			example TEXT NOT NULL DEFAULT '',
			line_number INTEGER NOT NULL,
			prompt_type TEXT NOT NULL DEFAULT 'nlp'
		);

		CREATE INDEX idx_prompts_section_id ON prompts(section_id);
	`)
	if err != nil {
		return err
	}

	// Master prompts, one per resolved target path
	_, err = tx.Exec(`
		CREATE TABLE master_prompts (
			page_file_path TEXT PRIMARY KEY,
			nlp_instruction TEXT NOT NULL DEFAULT '',
			sections_summary TEXT NOT NULL DEFAULT '',
			query_examples TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	// Search document queue, pushed to Meilisearch by the search worker
	_, err = tx.Exec(`
		CREATE TABLE search_documents (
			file_path TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			error TEXT,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX idx_search_documents_status ON search_documents(status);
	`)
	if err != nil {
		return err
	}

	// Settings table
	_, err = tx.Exec(`
		CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return err
	}

	return tx.Commit()
}
