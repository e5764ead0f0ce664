package installer

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// InstallBySpec installs the voices named by spec and returns how many
// succeeded. spec is "list", "all", a comma separated list of 1-based catalog
// numbers, or a single voice id.
func (i *Installer) InstallBySpec(ctx context.Context, spec string) (int, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))

	switch {
	case spec == "list":
		i.ShowCatalog(i.out)
		return 0, nil
	case spec == "all":
		return i.installAll(ctx)
	case strings.Contains(spec, ",") || allDigits(spec):
		return i.installNumbers(ctx, spec)
	default:
		if err := i.InstallVoice(ctx, spec); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

func (i *Installer) installAll(ctx context.Context) (int, error) {
	i.printf("%s\n", accent.Render("📦 Downloading all voices..."))

	success := 0
	for _, v := range i.cat.Voices() {
		if err := ctx.Err(); err != nil {
			return success, err
		}
		if err := i.InstallVoice(ctx, v.ID); err != nil {
			i.printf("%s %s: %v\n", warnMark, v.ID, err)
			continue
		}
		success++
	}

	i.printf("\n%s Downloaded %d/%d voices\n", okMark, success, i.cat.Len())
	return success, nil
}

func (i *Installer) installNumbers(ctx context.Context, spec string) (int, error) {
	success, requested := 0, 0
	for _, field := range strings.Split(spec, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(field), 10, 0)
		if err != nil {
			log.Debug("Skipping unparsable voice number", "value", field)
			continue
		}
		requested++

		v, ok := i.cat.At(int(n))
		if !ok {
			i.printf("%s Invalid number: %d (valid: 1-%d)\n", warnMark, n, i.cat.Len())
			continue
		}

		if err := ctx.Err(); err != nil {
			return success, err
		}
		if err := i.InstallVoice(ctx, v.ID); err != nil {
			i.printf("%s %s: %v\n", warnMark, v.ID, err)
			continue
		}
		success++
	}
	i.printf("\n%s Downloaded %d/%d voices\n", okMark, success, requested)
	return success, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
