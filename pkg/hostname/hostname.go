package hostname

import (
	"net"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Un host con 3 o más labels separados por punto se considera subdominio de
// tenant (ej. acme.mypos.local). Con 2 o menos es el dominio principal
// (mypos.local, localhost).
const minSubdomainLabels = 3

// IsSubdomain indica si el host corresponde a un subdominio de tenant.
// Acepta host con puerto (acme.mypos.local:8087).
func IsSubdomain(host string) bool {
	return Subdomain(host) != ""
}

// Subdomain devuelve el primer label del host si éste es un subdominio de
// tenant, o cadena vacía en caso contrario.
func Subdomain(host string) string {
	h := stripPort(host)
	if h == "" {
		return ""
	}
	labels := strings.Split(h, ".")
	if len(labels) < minSubdomainLabels {
		return ""
	}
	for _, l := range labels {
		if l == "" {
			return ""
		}
	}
	return strings.ToLower(labels[0])
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify deriva un subdominio válido a partir del nombre de un tenant:
// minúsculas, sin acentos, y cualquier secuencia no alfanumérica colapsada
// a un guión ("Panadería El Sol" -> "panaderia-el-sol").
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	s := strings.ToLower(folded)
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
