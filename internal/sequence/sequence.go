// Package sequence decides the order in which output formats are
// attempted for an image. The priority table favors the original format
// family for stability, lossless-capable formats when transparency must
// survive, and modern lossy formats for photographic content.
package sequence

import (
	"github.com/AnyUserName/imgfit/internal/analyzer"
	"github.com/AnyUserName/imgfit/internal/encoder"
)

// tableKey addresses one row of the priority table. family is the
// normalized original format ("" = other/unknown).
type tableKey struct {
	family       encoder.Format
	transparency bool
	photo        bool
}

// priorityTable maps every (family, transparency, photo) combination to
// its candidate order. Kept as data rather than branching code so the
// decision table stays auditable in one place.
var priorityTable = map[tableKey][]encoder.Format{
	// PNG sources: keep PNG first; JPEG only when fully opaque.
	{encoder.PNG, true, true}:   {encoder.PNG, encoder.WebP, encoder.AVIF},
	{encoder.PNG, true, false}:  {encoder.PNG, encoder.WebP, encoder.AVIF},
	{encoder.PNG, false, true}:  {encoder.PNG, encoder.WebP, encoder.AVIF, encoder.JPEG},
	{encoder.PNG, false, false}: {encoder.PNG, encoder.WebP, encoder.AVIF, encoder.JPEG},

	// JPEG sources: photos stay JPEG-first; graphics re-encode better
	// as WebP.
	{encoder.JPEG, true, true}:   {encoder.JPEG, encoder.WebP, encoder.AVIF},
	{encoder.JPEG, false, true}:  {encoder.JPEG, encoder.WebP, encoder.AVIF},
	{encoder.JPEG, true, false}:  {encoder.WebP, encoder.JPEG, encoder.AVIF},
	{encoder.JPEG, false, false}: {encoder.WebP, encoder.JPEG, encoder.AVIF},

	// WebP and AVIF sources: original family first, then the other
	// modern format.
	{encoder.WebP, true, true}:   {encoder.WebP, encoder.AVIF, encoder.JPEG, encoder.PNG},
	{encoder.WebP, true, false}:  {encoder.WebP, encoder.AVIF, encoder.JPEG, encoder.PNG},
	{encoder.WebP, false, true}:  {encoder.WebP, encoder.AVIF, encoder.JPEG, encoder.PNG},
	{encoder.WebP, false, false}: {encoder.WebP, encoder.AVIF, encoder.JPEG, encoder.PNG},

	{encoder.AVIF, true, true}:   {encoder.AVIF, encoder.WebP, encoder.JPEG, encoder.PNG},
	{encoder.AVIF, true, false}:  {encoder.AVIF, encoder.WebP, encoder.JPEG, encoder.PNG},
	{encoder.AVIF, false, true}:  {encoder.AVIF, encoder.WebP, encoder.JPEG, encoder.PNG},
	{encoder.AVIF, false, false}: {encoder.AVIF, encoder.WebP, encoder.JPEG, encoder.PNG},

	// Other/unknown sources (gif, bmp, tiff, ...): transparency keeps
	// alpha-capable formats ahead; otherwise photographic content leans
	// lossy, graphic content leans lossless.
	{"", true, true}:   {encoder.WebP, encoder.PNG, encoder.AVIF, encoder.JPEG},
	{"", true, false}:  {encoder.WebP, encoder.PNG, encoder.AVIF, encoder.JPEG},
	{"", false, true}:  {encoder.WebP, encoder.JPEG, encoder.AVIF, encoder.PNG},
	{"", false, false}: {encoder.WebP, encoder.PNG, encoder.AVIF, encoder.JPEG},
}

// Build produces the ordered candidate list for one optimizer run.
// An explicit requested format short-circuits the table: the caller
// asked for exactly that format, with no fallback. Earlier entries win
// ties; the first format to satisfy the size window is chosen even if
// a later one could do better.
func Build(originalFormat string, requested encoder.Format, c analyzer.Characteristics) []encoder.Format {
	if requested != encoder.Auto && requested != "" {
		return []encoder.Format{requested}
	}

	key := tableKey{
		family:       encoder.Family(originalFormat),
		transparency: c.HasTransparency,
		photo:        c.IsPhoto,
	}
	row := priorityTable[key]

	// Copy so callers can't mutate the table.
	out := make([]encoder.Format, len(row))
	copy(out, row)
	return out
}
