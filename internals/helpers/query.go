package helper

import "strings"

// LikeEscape dipasang setelah LIKE ? supaya % dan _ dari input diperlakukan literal.
const LikeEscape = `ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern: substring case-insensitive → "%term%" (lowercase, escaped).
// Kolom harus dibandingkan dengan LOWER(col).
func LikePattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}
