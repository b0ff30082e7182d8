// Package source defines player sources: third-party embeddable video
// endpoints described by a URL template and an iframe security policy.
package source

// Origin identifies where a player source came from. Built-in sources are
// defined by the application and can never be edited or deleted; all other
// tiers are user-driven and deletable.
type Origin int

const (
	BuiltIn Origin = iota
	Custom
	ImportedManual
	ImportedPublic
)

func (o Origin) String() string {
	switch o {
	case BuiltIn:
		return "built-in"
	case Custom:
		return "custom"
	case ImportedManual:
		return "imported"
	case ImportedPublic:
		return "public"
	default:
		return "unknown"
	}
}

// MediaSupport declares which media types a source can play.
type MediaSupport string

const (
	SupportMovie MediaSupport = "movie"
	SupportTV    MediaSupport = "tv"
	SupportBoth  MediaSupport = "both"
)

// ParseMediaSupport normalises a stored media-type string. Unknown values
// degrade to "both" so an old or hand-edited record still resolves.
func ParseMediaSupport(s string) MediaSupport {
	switch MediaSupport(s) {
	case SupportMovie:
		return SupportMovie
	case SupportTV:
		return SupportTV
	default:
		return SupportBoth
	}
}

// DefaultSandboxPermissions is the conservative allow-list applied to
// sandboxed custom and imported sources. Top-level navigation and popups are
// never granted.
const DefaultSandboxPermissions = "allow-scripts allow-same-origin allow-presentation"

// PlayerSource is the canonical player definition. MovieTemplate and
// TVTemplate hold the URL templates per media type; either may be empty,
// meaning the source does not support that type.
type PlayerSource struct {
	ID                 string
	Name               string
	Origin             Origin
	MovieTemplate      string
	TVTemplate         string
	Sandboxed          bool
	SandboxPermissions string
}

// Deletable reports whether the user may remove this source.
func (p PlayerSource) Deletable() bool {
	return p.Origin != BuiltIn
}

// Support derives the media types this source can serve from its templates.
func (p PlayerSource) Support() MediaSupport {
	switch {
	case p.MovieTemplate != "" && p.TVTemplate != "":
		return SupportBoth
	case p.TVTemplate != "":
		return SupportTV
	default:
		return SupportMovie
	}
}

// Key returns the deduplication key used by the registry. Two sources
// collapse only when both name and id match exactly.
func (p PlayerSource) Key() string {
	return p.Name + "\x00" + p.ID
}

// FromCustom builds a PlayerSource from a stored custom source record. The
// single user-authored base URL serves as the template for every media type
// the record declares.
func FromCustom(id, name, baseURL string, useSandbox bool, support MediaSupport) PlayerSource {
	p := PlayerSource{
		ID:        id,
		Name:      name,
		Origin:    Custom,
		Sandboxed: useSandbox,
	}
	if useSandbox {
		p.SandboxPermissions = DefaultSandboxPermissions
	}
	if support == SupportMovie || support == SupportBoth {
		p.MovieTemplate = baseURL
	}
	if support == SupportTV || support == SupportBoth {
		p.TVTemplate = baseURL
	}
	return p
}

// FromImported builds a PlayerSource from a stored imported player record.
// The generic URL fallback has already been folded into the movie/TV
// templates at import time.
func FromImported(id, name, movieURL, tvURL string, useSandbox, public bool) PlayerSource {
	origin := ImportedManual
	if public {
		origin = ImportedPublic
	}
	p := PlayerSource{
		ID:            id,
		Name:          name,
		Origin:        origin,
		MovieTemplate: movieURL,
		TVTemplate:    tvURL,
		Sandboxed:     useSandbox,
	}
	if useSandbox {
		p.SandboxPermissions = DefaultSandboxPermissions
	}
	return p
}
