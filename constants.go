package uec

// SchemaName is the fixed value every valid card carries in schema.name.
const SchemaName = "UEC"

// Version string constants. SchemaVersion is the v1 string kept under its
// historical name; SchemaVersionV2 selects the v2 payload shapes.
const (
	SchemaVersion   = "1.0"
	SchemaVersionV2 = "2.0"
)

// Card kinds. The kind field discriminates which payload shape applies.
const (
	KindCharacter = "character"
	KindPersona   = "persona"
)

// Asset locator types recognized anywhere in a document tree.
const (
	AssetTypeInlineBase64 = "inline_base64"
	AssetTypeRemoteURL    = "remote_url"
	AssetTypeAssetRef     = "asset_ref"
)

// KnownVersions is the sole membership test for "known version". Any other
// string, including future versions, receives the unknown-version skip
// behavior during validation.
var KnownVersions = map[string]bool{
	SchemaVersion:   true,
	SchemaVersionV2: true,
}
