package helper

import (
	"strings"

	"table-gen/internal/naming"
)

var abbreviations = map[string]string{
	// Common Nouns
	"nm": "name", "dt": "date", "no": "number", "cd": "code",
	"desc": "description", "amt": "amount", "cnt": "count", "qty": "quantity",
	"addr": "address", "tel": "phone", "hp": "phone", "ph": "phone", "mobile": "phone",
	"biz": "business", "pwd": "password", "passwd": "password", "pw": "password",
	"img": "image", "zip": "zipcode", "postal": "zipcode", "mail": "email",
	"msg": "message", "txt": "text", "tit": "title", "subj": "subject",
	"doc": "document", "usr": "user", "emp": "employee",
	"dept": "department", "grp": "group", "cat": "category",
	"loc": "location", "lat": "latitude", "lng": "longitude", "lon": "longitude",
	"st": "street", "bal": "balance", "avg": "average",
	"uid": "id", "pid": "id", "uuid": "id",

	// Verbs / Status
	"reg": "registered", "mod": "modified", "del": "deleted", "cre": "created",
	"upd": "updated", "yn": "yesno", "stat": "status", "sts": "status",
	"typ": "type", "val": "value", "ord": "order", "seq": "sequence", "idx": "index",
	"is": "yesno", "has": "yesno", "use": "yesno", "flg": "flag",
}

// Meaning expands a column name into lower-case English words with known
// abbreviations decoded, e.g. "UsrEmailAddr" -> "user email address".
func Meaning(column string) string {
	words := naming.Words(column)
	decoded := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if full, ok := abbreviations[w]; ok {
			w = full
		}
		decoded = append(decoded, w)
	}
	return strings.Join(decoded, " ")
}

// category picks the sample-data family for a column meaning. Order matters:
// "email address" is an email, not an address.
func category(meaning string) string {
	has := func(words ...string) bool {
		for _, w := range words {
			if containsWord(meaning, w) {
				return true
			}
		}
		return false
	}
	switch {
	case has("email"):
		return "email"
	case has("phone", "fax"):
		return "phone"
	case has("url", "link", "homepage", "website"):
		return "url"
	case has("ip"):
		return "ip"
	case has("zipcode"):
		return "zipcode"
	case has("address", "street"):
		return "address"
	case has("city"):
		return "city"
	case has("country"):
		return "country"
	case has("password"):
		return "password"
	case has("username", "login"):
		return "username"
	case has("company", "business"):
		return "company"
	case has("name"):
		return "name"
	case has("title", "subject"):
		return "title"
	case has("description", "text", "message", "comment", "content", "body", "note"):
		return "text"
	case has("year"):
		return "year"
	case has("count", "quantity", "amount"):
		return "count"
	case has("price", "cost", "balance"):
		return "price"
	case has("id"):
		return "id"
	}
	return ""
}

func containsWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if w == word {
			return true
		}
	}
	return false
}
