package installer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bibo-tts/bibo/internal/catalog"
)

const (
	huggingFaceBase = "https://huggingface.co"
	hfMirrorBase    = "https://hf-mirror.com"
	piperRepoPath   = "/rhasspy/piper-voices/resolve/main/"

	engineVersion = "v1.12.20"
	engineRelease = "https://github.com/k2-fsa/sherpa-onnx/releases/download/" + engineVersion + "/"
)

// withMirror swaps the scheme and host of raw for those of mirror. An empty
// or unparsable mirror yields "".
func withMirror(raw, mirror string) string {
	mirror = strings.TrimRight(strings.TrimSpace(mirror), "/")
	if mirror == "" {
		return ""
	}
	m, err := url.Parse(mirror)
	if err != nil || m.Host == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.Scheme = m.Scheme
	u.Host = m.Host
	u.Path = strings.TrimRight(m.Path, "/") + u.Path
	return u.String()
}

// sources lists the URLs to try in order, dropping duplicates and blanks.
func sources(urls ...string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// piperSources returns the mirror, Hugging Face and hf-mirror.com URLs for
// one file of a piper voice. suffix is ".onnx" or ".onnx.json".
func piperSources(v catalog.Voice, suffix, mirror string) []string {
	upstream := huggingFaceBase + piperRepoPath + v.HFPath + suffix
	return sources(
		withMirror(upstream, mirror),
		upstream,
		hfMirrorBase+piperRepoPath+v.HFPath+suffix,
	)
}

// archiveSources returns the mirror and upstream URLs of a release archive.
func archiveSources(archiveURL, mirror string) []string {
	return sources(withMirror(archiveURL, mirror), archiveURL)
}

// EngineURL returns the sherpa-onnx shared build for the platform.
func EngineURL(goos, goarch string) (string, error) {
	var platform string
	switch {
	case goos == "darwin":
		platform = "osx-universal2"
	case goos == "linux" && goarch == "amd64":
		platform = "linux-x64"
	case goos == "linux" && goarch == "arm64":
		platform = "linux-aarch64"
	default:
		return "", fmt.Errorf("no sherpa-onnx build for %s/%s", goos, goarch)
	}
	return fmt.Sprintf("%ssherpa-onnx-%s-%s-shared.tar.bz2", engineRelease, engineVersion, platform), nil
}
