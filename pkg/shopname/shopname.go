package shopname

import "strings"

// MyshopifySuffix is the domain suffix shared by every Shopify storefront.
const MyshopifySuffix = ".myshopify.com"

// Sanitize normalizes a raw shop domain into a stable uppercase key suitable
// as a map key or environment-variable suffix.
//
// The transformation strips a leading "https://", a trailing ".myshopify.com",
// and a trailing "/admin", then replaces hyphens with underscores and
// upper-cases the result:
//
//	Sanitize("https://foo-bar.myshopify.com/admin") // "FOO_BAR"
//	Sanitize("my-dummy-store-1.myshopify.com")      // "MY_DUMMY_STORE_1"
//
// The function is total, deterministic and idempotent. It performs no shape
// validation: a string that is not a shop domain sanitizes to whatever the
// substitution rules produce, and two spellings of the same shop collapse to
// the same key on purpose.
func Sanitize(shop string) string {
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimSuffix(shop, "/admin")
	shop = strings.TrimSuffix(shop, MyshopifySuffix)
	shop = strings.ReplaceAll(shop, "-", "_")
	return strings.ToUpper(shop)
}

// Domain reverses Sanitize back into a full myshopify domain:
//
//	Domain("FOO_BAR") // "foo-bar.myshopify.com"
//
// Keys read back from configuration (env-variable suffixes, database keys)
// need the domain form when talking to Shopify again. Domain is a best-effort
// inverse: information Sanitize discards (an "/admin" path, a non-myshopify
// host) is not recovered.
func Domain(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	if key == "" {
		return ""
	}
	if strings.HasSuffix(key, MyshopifySuffix) {
		return key
	}
	return key + MyshopifySuffix
}
