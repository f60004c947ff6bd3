package starter

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind is the fetch strategy a reference maps to.
type Kind string

const (
	KindLocal  Kind = "local"
	KindRemote Kind = "remote"
)

// Protocol selects the clone URL form for remote starters.
type Protocol string

const (
	ProtocolSSH   Protocol = "ssh"
	ProtocolHTTPS Protocol = "https"
)

// ParseProtocol maps a config value to a Protocol; anything unknown is SSH.
func ParseProtocol(s string) Protocol {
	if strings.EqualFold(strings.TrimSpace(s), string(ProtocolHTTPS)) {
		return ProtocolHTTPS
	}
	return ProtocolSSH
}

// Ref is a classified starter reference.
type Ref struct {
	Raw  string
	Kind Kind

	// Remote only.
	Host       string
	Owner      string
	Repo       string
	Committish string
	CloneURL   string

	// Local only: absolute path.
	Path string
}

func (r Ref) String() string {
	if r.Kind == KindLocal {
		return r.Path
	}
	if r.Committish != "" {
		return r.CloneURL + "#" + r.Committish
	}
	return r.CloneURL
}

// Hosted is a parsed hosted-repository locator.
type Hosted struct {
	Host       string
	Owner      string
	Repo       string
	Committish string
}

// CloneURL renders the locator as a clone URL without the committish.
func (h *Hosted) CloneURL(p Protocol) string {
	if p == ProtocolHTTPS {
		return fmt.Sprintf("https://%s/%s/%s.git", h.Host, h.Owner, h.Repo)
	}
	return fmt.Sprintf("git@%s:%s/%s.git", h.Host, h.Owner, h.Repo)
}

var knownHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

var shortcutHosts = map[string]string{
	"github":    "github.com",
	"gitlab":    "gitlab.com",
	"bitbucket": "bitbucket.org",
}

var urlSchemes = map[string]bool{
	"https":     true,
	"http":      true,
	"git":       true,
	"ssh":       true,
	"git+https": true,
	"git+ssh":   true,
}

const namePart = `[A-Za-z0-9_.-]+`

var (
	ownerRepoRe  = regexp.MustCompile(`^(` + namePart + `)/(` + namePart + `)$`)
	bareShortcut = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*/` + namePart + `$`)
	scpLikeRe    = regexp.MustCompile(`^(?:[^@/:]+@)?([^@/:]+):(` + namePart + `)/(` + namePart + `)$`)
	hasSchemeRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// ParseHosted attempts to read ref as a hosted-repository locator.
func ParseHosted(ref string) (*Hosted, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, false
	}

	body, committish, _ := strings.Cut(ref, "#")

	var h *Hosted
	switch {
	case hasSchemeRe.MatchString(body):
		h = parseURL(body)
	case strings.Contains(body, ":") && !strings.Contains(body, "@"):
		h = parseShortcut(body)
		if h == nil {
			h = parseSCP(body)
		}
	case strings.Contains(body, "@"):
		h = parseSCP(body)
	case bareShortcut.MatchString(body):
		h = fromOwnerRepo("github.com", body)
	}
	if h == nil {
		return nil, false
	}
	if committish != "" {
		h.Committish = committish
	}
	return h, true
}

func parseShortcut(body string) *Hosted {
	prefix, rest, _ := strings.Cut(body, ":")
	host, ok := shortcutHosts[prefix]
	if !ok {
		return nil
	}
	return fromOwnerRepo(host, rest)
}

func parseSCP(body string) *Hosted {
	m := scpLikeRe.FindStringSubmatch(body)
	if m == nil || !knownHosts[strings.ToLower(m[1])] {
		return nil
	}
	return newHosted(strings.ToLower(m[1]), m[2], m[3])
}

func parseURL(body string) *Hosted {
	u, err := url.Parse(body)
	if err != nil || !urlSchemes[strings.ToLower(u.Scheme)] {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	if !knownHosts[host] {
		return nil
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return nil
	}
	h := fromOwnerRepo(host, segments[0]+"/"+segments[1])
	if h == nil {
		return nil
	}

	// Browser URLs such as https://github.com/org/repo/tree/v2.
	rest := segments[2:]
	switch {
	case len(rest) == 0:
	case len(rest) >= 2 && (rest[0] == "tree" || (rest[0] == "-" && len(rest) >= 3 && rest[1] == "tree")):
		if rest[0] == "-" {
			rest = rest[1:]
		}
		h.Committish = strings.Join(rest[1:], "/")
	default:
		return nil
	}
	return h
}

func fromOwnerRepo(host, s string) *Hosted {
	m := ownerRepoRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	return newHosted(host, m[1], m[2])
}

func newHosted(host, owner, repo string) *Hosted {
	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" || strings.HasPrefix(owner, ".") || strings.HasPrefix(repo, ".") {
		return nil
	}
	return &Hosted{Host: host, Owner: owner, Repo: repo}
}

// Resolve classifies raw. A bare owner/repo shortcut that names an existing
// path under cwd is treated as local.
func Resolve(raw, cwd string, protocol Protocol) Ref {
	ref := Ref{Raw: raw}

	if h, ok := ParseHosted(raw); ok && !(isBareShortcut(raw) && exists(filepath.Join(cwd, raw))) {
		ref.Kind = KindRemote
		ref.Host = h.Host
		ref.Owner = h.Owner
		ref.Repo = h.Repo
		ref.Committish = h.Committish
		ref.CloneURL = h.CloneURL(protocol)
		return ref
	}

	ref.Kind = KindLocal
	ref.Path = raw
	if !filepath.IsAbs(raw) {
		ref.Path = filepath.Join(cwd, raw)
	}
	ref.Path = filepath.Clean(ref.Path)
	return ref
}

func isBareShortcut(raw string) bool {
	body, _, _ := strings.Cut(raw, "#")
	return bareShortcut.MatchString(body)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
