package db

// QueueSearchDocument inserts or replaces the search document for a file
// and marks it pending so the search worker picks it up
func QueueSearchDocument(filePath, content string) error {
	_, err := Run(`
		INSERT INTO search_documents (file_path, content, status, error, updated_at)
		VALUES (?, ?, 'pending', NULL, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			content = excluded.content,
			status = 'pending',
			error = NULL,
			updated_at = excluded.updated_at
	`, filePath, content, NowMs())
	return err
}

// ListSearchDocumentsByStatus returns up to limit documents in the given status
func ListSearchDocumentsByStatus(status string, limit int) ([]SearchDocument, error) {
	rows, err := GetDB().Query(`
		SELECT file_path, content, status, error, updated_at
		FROM search_documents
		WHERE status = ?
		ORDER BY updated_at ASC
		LIMIT ?
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []SearchDocument
	for rows.Next() {
		var d SearchDocument
		if err := rows.Scan(&d.FilePath, &d.Content, &d.Status, &d.Error, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// MarkSearchDocumentSynced marks a document as pushed to the search index
func MarkSearchDocumentSynced(filePath string) error {
	_, err := Run(`
		UPDATE search_documents SET status = 'synced', error = NULL, updated_at = ?
		WHERE file_path = ?
	`, NowMs(), filePath)
	return err
}

// MarkSearchDocumentFailed records a push failure for a document
func MarkSearchDocumentFailed(filePath, errMsg string) error {
	_, err := Run(`
		UPDATE search_documents SET status = 'failed', error = ?, updated_at = ?
		WHERE file_path = ?
	`, errMsg, NowMs(), filePath)
	return err
}
