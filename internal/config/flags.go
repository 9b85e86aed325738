package config

// returns default indexer flags, honouring the retrieval env overrides
func DefaultIndexerFlags() Flags {
	r, err := LoadRetrievalConfig()
	if err != nil {
		d := DefaultRetrievalConfig()
		r = &d
	}

	return Flags{CSVPath: r.CatalogCSVPath, IndexPath: r.IndexPath}
}
