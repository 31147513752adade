package cmd

import (
	"github.com/urfave/cli"

	"github.com/solstice-render/pathtrace/scene"
)

// ShowSceneInfo parses a scene file and prints a summary of its contents
// without rendering it, useful for sanity-checking a scene before spending
// time on a full render.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	path := ctx.String("file")
	if path == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	sc, err := scene.Parse(path)
	if err != nil {
		logger.Errorf("failed to load scene %q: %v", path, err)
		return nil
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}
