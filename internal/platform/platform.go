// Package platform describes the host the program runs on. Components take
// a Capabilities value instead of probing the host themselves.
package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MimeLyc/sanzang/pkg/textenc"
)

// Capabilities is the narrow view of the host used by the batch layer and
// the command layer.
type Capabilities interface {
	OS() string
	Arch() string
	ProcessorCount() int
	// ConcurrentWorkers reports whether files may be translated in parallel.
	ConcurrentWorkers() bool
	// DefaultEncoding is the host's text encoding name as reported by the
	// locale, before any fallback is applied.
	DefaultEncoding() string
}

type host struct {
	getenv func(string) string
}

// Host returns the Capabilities of the running process.
func Host() Capabilities {
	return host{getenv: os.Getenv}
}

func (h host) OS() string   { return runtime.GOOS }
func (h host) Arch() string { return runtime.GOARCH }

func (h host) ProcessorCount() int {
	return runtime.NumCPU()
}

func (h host) ConcurrentWorkers() bool {
	return runtime.GOMAXPROCS(0) > 1
}

func (h host) DefaultEncoding() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := h.getenv(key); v != "" {
			return localeCharset(v)
		}
	}
	return ""
}

// localeCharset extracts the charset of a locale such as "zh_TW.Big5@stroke".
func localeCharset(locale string) string {
	if locale == "C" || locale == "POSIX" {
		return "US-ASCII"
	}
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 {
		return ""
	}
	return locale[i+1:]
}

// DataEncoding is the encoding used for text data when none is configured.
func DataEncoding(caps Capabilities) string {
	return textenc.DataEncoding(caps.DefaultEncoding())
}

// Report renders the --platform listing.
func Report(caps Capabilities, version string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "host_arch = %s\n", caps.Arch())
	fmt.Fprintf(&sb, "host_os = %s\n", caps.OS())
	fmt.Fprintf(&sb, "host_processors = %d\n", caps.ProcessorCount())
	fmt.Fprintf(&sb, "host_encoding = %s\n", orNone(caps.DefaultEncoding()))
	fmt.Fprintf(&sb, "go_version = %s\n", runtime.Version())
	fmt.Fprintf(&sb, "sanzang_encoding = %s\n", DataEncoding(caps))
	fmt.Fprintf(&sb, "sanzang_parallel = %t\n", caps.ConcurrentWorkers())
	fmt.Fprintf(&sb, "sanzang_version = %s\n", version)
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
