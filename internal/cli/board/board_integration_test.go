package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/testutil"
	clitest "github.com/thenoetrevino/dragboard/internal/testutil/cli"
)

func TestCreateAndListBoards(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", "Sprint 12", "--quiet"})
	require.NoError(t, err)
	id := strings.TrimSpace(output)
	assert.NotEmpty(t, id)

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, output, "Sprint 12 (ID: "+id+")")
}

func TestCreateBoard_EmptyTitle(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{"--title", " ", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestShowBoard(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, _ := b.SeedBoard(t, []string{"Todo", "A", "B"}, []string{"Done"})

	output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", boardID.String()})
	require.NoError(t, err)

	assert.Contains(t, output, "Todo (ID: ")
	assert.Contains(t, output, "  1. A (ID: ")
	assert.Contains(t, output, "  2. B (ID: ")
	assert.Contains(t, output, "Done (ID: ")
}

func TestShowBoard_FromEnv(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, lists := b.SeedBoard(t, []string{"Todo"})
	t.Setenv(cli.EnvBoard, boardID.String())

	output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, lists[0].ID.String()+"\n", output)
}

func TestShowBoard_NoBoard(t *testing.T) {
	_, app := clitest.SetupCLITest(t)
	t.Setenv(cli.EnvBoard, "")

	output, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrNoBoard)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	errData := testutil.ParseJSON(t, output)["error"].(map[string]any)
	assert.Equal(t, "NO_BOARD", errData["code"])
}

func TestShowBoard_NotFound(t *testing.T) {
	_, app := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, ShowCmd(), []string{"--board", "999", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}
