package services

// Config keys for settings storage.
const (
	keySampleIDPattern = "sampleid.pattern"
	keySampleIDGroup   = "sampleid.group"
	keyLibraryDir      = "library.dir"
	keySeparator       = "separator"

	keyWatchSettleMillis = "watch.settle_ms"
	keyOutputPlain       = "output.plain"
)

// readerSection is the config section holding reader settings for a format.
func readerSection(format string) string {
	return "formats." + format + ".reader"
}

// writerSection is the config section holding writer settings for a format.
func writerSection(format string) string {
	return "formats." + format + ".writer"
}

// mergeConfig returns base overlaid with overrides. Empty string
// overrides are ignored so unset CLI flags keep the configured value.
func mergeConfig(base, overrides map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range overrides {
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		result[k] = v
	}
	return result
}
