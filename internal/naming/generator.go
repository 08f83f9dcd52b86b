// Package naming builds timestamp-derived filenames and resolves collisions
// between planned and pre-existing names.
package naming

import (
	"strings"
	"time"
)

// Strategy selects the prefix of generated names.
type Strategy string

const (
	// StrategyFixed uses the literal "IMG" prefix for every file.
	StrategyFixed Strategy = "img"
	// StrategyExt uses the uppercased original extension as prefix
	// (JPG_..., PNG_...).
	StrategyExt Strategy = "ext"
)

// Prefix used when the source file has no extension, under either strategy.
const noExtPrefix = "FILE"

const fixedPrefix = "IMG"

// Generator produces destination filenames of the form
// PREFIX_ddmmyy_hhmmAMPM.ext. The zero value uses [StrategyFixed].
type Generator struct {
	Strategy Strategy
}

// Stem returns the name without extension for ext (as returned by
// filepath.Ext, leading dot included, possibly empty) at ts. The time part is
// a 12-hour clock with zero-padded fields and an uppercase AM/PM suffix.
func (g Generator) Stem(ext string, ts time.Time) string {
	prefix := fixedPrefix
	bare := strings.TrimPrefix(ext, ".")
	if bare == "" {
		prefix = noExtPrefix
	} else if g.Strategy == StrategyExt {
		prefix = strings.ToUpper(bare)
	}
	return prefix + "_" + ts.Format("020106") + "_" + ts.Format("0304PM")
}

// Generate claims a unique name for (ext, ts) in used and returns the final
// filename plus the conflict suffix applied (0 when none). The extension is
// lowercased in the result; files without one get none. Collisions are keyed
// on the stem, so IMG_290925_1103AM.jpg and a planned .tiff twin still
// disambiguate.
func (g Generator) Generate(ext string, ts time.Time, used *NameSet) (string, int) {
	stem, suffix := used.Claim(g.Stem(ext, ts))
	return stem + strings.ToLower(ext), suffix
}
