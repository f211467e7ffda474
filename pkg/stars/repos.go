// Package stars fetches GitHub star counts and writes them into the pages
// that advertise them.
package stars

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anxiangsir/homepage/pkg/errors"
)

// RepoRef names a repository and the elements that show its star count.
type RepoRef struct {
	Owner    string `json:"owner" yaml:"owner" mapstructure:"owner"`
	Repo     string `json:"repo" yaml:"repo" mapstructure:"repo"`
	Selector string `json:"selector" yaml:"selector" mapstructure:"selector"`
}

// FullName returns "owner/repo".
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// Validate checks that every field is set.
func (r RepoRef) Validate() error {
	switch {
	case r.Owner == "":
		return errors.NewValidationError("owner", r, "repository owner is required")
	case r.Repo == "":
		return errors.NewValidationError("repo", r, "repository name is required")
	case r.Selector == "":
		return errors.NewValidationError("selector", r, "selector is required")
	}
	return nil
}

// DefaultRepos are the repositories featured on the homepage.
var DefaultRepos = []RepoRef{
	{Owner: "deepinsight", Repo: "insightface", Selector: ".stars-insightface"},
	{Owner: "EvolvingLMMs-Lab", Repo: "LLaVA-OneVision-1.5", Selector: ".stars-llava-onevision"},
	{Owner: "LLaVA-VL", Repo: "LLaVA-NeXT", Selector: ".stars-llava-next"},
	{Owner: "deepglint", Repo: "unicom", Selector: ".stars-unicom"},
	{Owner: "anxiangsir", Repo: "urban_seg", Selector: ".stars-urban-seg"},
}

// ParseRepo parses "owner/repo=selector". Without "=selector" the selector
// defaults to ".stars-<repo>" lowercased.
func ParseRepo(s string) (RepoRef, error) {
	name, selector, _ := strings.Cut(strings.TrimSpace(s), "=")
	owner, repo, ok := strings.Cut(name, "/")
	if !ok {
		return RepoRef{}, errors.NewValidationError("repo", s, "expected owner/repo[=selector]")
	}
	if selector == "" {
		selector = ".stars-" + strings.ToLower(repo)
	}
	ref := RepoRef{Owner: owner, Repo: repo, Selector: selector}
	return ref, ref.Validate()
}

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Label is the text written into star count elements.
func Label(n int) string {
	return "⭐ " + FormatCount(n) + " Stars"
}
