package source

// builtins are constructed at process start, never persisted, never mutated.
// The first entry is the fallback whenever no other selection is possible.
var builtins = []PlayerSource{
	{
		ID:                 "ezsource",
		Name:               "EZsource",
		Origin:             BuiltIn,
		MovieTemplate:      "https://lethe399key.com/play/{imdb_id}",
		TVTemplate:         "https://lethe399key.com/play/{imdb_id}",
		Sandboxed:          true,
		SandboxPermissions: "allow-scripts allow-same-origin allow-presentation allow-forms",
	},
	{
		ID:            "autoembed",
		Name:          "AutoEmbed",
		Origin:        BuiltIn,
		MovieTemplate: "https://player.autoembed.cc/embed/movie/{imdb_id}?server=15",
		TVTemplate:    "https://player.autoembed.cc/embed/tv/{imdb_id}/{season}/{episode}?server=15",
	},
	{
		ID:                 "vidsrc",
		Name:               "VidSrc",
		Origin:             BuiltIn,
		MovieTemplate:      "https://vidsrc.cc/v2/embed/movie/{imdb_id}",
		TVTemplate:         "https://vidsrc.cc/v2/embed/tv/{imdb_id}/{season}/{episode}",
		Sandboxed:          true,
		SandboxPermissions: "allow-scripts allow-same-origin allow-presentation",
	},
	{
		ID:            "rivestream",
		Name:          "RiveStream",
		Origin:        BuiltIn,
		MovieTemplate: "https://rivestream.org/embed?type=movie&id={tmdb_id}",
		TVTemplate:    "https://rivestream.org/embed?type=tv&id={tmdb_id}&season={season}&episode={episode}",
	},
}

// BuiltIns returns a copy of the built-in player sources.
func BuiltIns() []PlayerSource {
	out := make([]PlayerSource, len(builtins))
	copy(out, builtins)
	return out
}

// FirstBuiltIn returns the fallback player.
func FirstBuiltIn() PlayerSource {
	return builtins[0]
}
