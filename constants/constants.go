package constants

import "os"

func GetLibraryDir() string {
	path := os.Getenv("LIBRARY_PATH")
	if path != "" {
		return path
	}
	return "./library"
}

func GetGeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func GetAddr() string {
	addr := os.Getenv("MUSICBOX_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMetadataEndpoint returns the DynamoDB endpoint for song metadata
// enrichment; empty means enrichment is disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

const DefaultModel = "gemini-2.0-flash"

const MetadataTable = "musicbox-metadata"
