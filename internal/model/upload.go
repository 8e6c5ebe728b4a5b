package model

// TimestampLayout is the storage format for uploaded_at values.
const TimestampLayout = "2006-01-02 15:04:05"

// Upload summarizes one ingestion event. The ID is generated at save time
// and is never reused; deleting an upload removes every row carrying it.
type Upload struct {
	ID             string
	UploadedAt     string
	SourceFilename string
	RowCount       int
}
