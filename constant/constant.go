package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

type Strategy string

const (
	StrategyPassthrough Strategy = "passthrough"
	StrategyTranscode   Strategy = "transcode"
)

func (s Strategy) String() string {
	return string(s)
}

// MaxUploadBytes is the upload size ceiling (15 MiB).
const MaxUploadBytes int64 = 15 << 20

// AllowedVideoMIME lists the accepted declared container types.
var AllowedVideoMIME = map[string]struct{}{
	"video/mp4":        {},
	"video/webm":       {},
	"video/ogg":        {},
	"video/quicktime":  {},
	"video/x-msvideo":  {},
	"video/x-matroska": {},
}

// Public URL prefixes, each mounted 1:1 on a storage directory.
const (
	PublicVideoPrefix     = "/media/videos"
	PublicThumbnailPrefix = "/media/thumbnails"
	PublicOriginalPrefix  = "/media/originals"
)

// PlaceholderThumbnail is the thumbnail path stored when no thumbnail was generated.
const PlaceholderThumbnail = "/placeholder-thumbnail.svg"
