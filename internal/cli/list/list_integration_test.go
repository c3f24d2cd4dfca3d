package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/testutil"
	clitest "github.com/thenoetrevino/dragboard/internal/testutil/cli"
)

func TestMoveList(t *testing.T) {
	tests := []struct {
		name string
		args func(ids []string) []string
		want [][]string
	}{
		{
			name: "over earlier list",
			args: func(ids []string) []string { return []string{"--id", ids[2], "--over", ids[0]} },
			want: [][]string{{"Done", "C"}, {"Todo", "A"}, {"Doing", "B"}},
		},
		{
			name: "over later list",
			args: func(ids []string) []string { return []string{"--id", ids[0], "--over", ids[1]} },
			want: [][]string{{"Doing", "B"}, {"Todo", "A"}, {"Done", "C"}},
		},
		{
			name: "to end",
			args: func(ids []string) []string { return []string{"--id", ids[0], "--to-end"} },
			want: [][]string{{"Doing", "B"}, {"Done", "C"}, {"Todo", "A"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, app := clitest.SetupCLITest(t)
			boardID, lists := b.SeedBoard(t, []string{"Todo", "A"}, []string{"Doing", "B"}, []string{"Done", "C"})
			ids := []string{lists[0].ID.String(), lists[1].ID.String(), lists[2].ID.String()}

			args := append([]string{"--board", boardID.String()}, tt.args(ids)...)
			_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), args)
			require.NoError(t, err)

			assert.Equal(t, tt.want, testutil.Titles(b.Lists(t, boardID)))
		})
	}
}

func TestMoveList_HumanOutput(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, lists := b.SeedBoard(t, []string{"Todo"}, []string{"Done"})

	output, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
		"--board", boardID.String(), "--id", lists[0].ID.String(), "--to-end",
	})
	require.NoError(t, err)
	assert.Equal(t, "List "+lists[0].ID.String()+": Todo (position 1)\n", output)
}

func TestMoveList_AlreadyInPlace(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, lists := b.SeedBoard(t, []string{"Todo"}, []string{"Done"})

	output, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
		"--board", boardID.String(), "--id", lists[1].ID.String(), "--to-end",
	})
	require.NoError(t, err)
	assert.Contains(t, output, "already in place")
}

func TestMoveList_UnknownList(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, lists := b.SeedBoard(t, []string{"Todo"})

	_, err := clitest.ExecuteCLICommand(t, app, MoveCmd(), []string{
		"--board", boardID.String(), "--id", lists[0].ID.String(), "--over", "999", "--json",
	})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}

func TestCreateRenameDeleteList(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, _ := b.SeedBoard(t, []string{"Todo", "A"})

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
		"--board", boardID.String(), "--title", "Review", "--json",
	})
	require.NoError(t, err)
	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "Review", data["title"])
	assert.Equal(t, float64(1), data["order"])
	newID := data["id"].(string)

	output, err = clitest.ExecuteCLICommand(t, app, RenameCmd(), []string{
		"--board", boardID.String(), "--id", newID, "--title", "In review",
	})
	require.NoError(t, err)
	assert.Equal(t, "List "+newID+": In review (position 1)\n", output)
	assert.Equal(t, [][]string{{"Todo", "A"}, {"In review"}}, testutil.Titles(b.Lists(t, boardID)))

	_, err = clitest.ExecuteCLICommand(t, app, DeleteCmd(), []string{
		"--board", boardID.String(), "--id", newID,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Todo", "A"}}, testutil.Titles(b.Lists(t, boardID)))
}

func TestCreateList_HumanOutput(t *testing.T) {
	b, app := clitest.SetupCLITest(t)
	boardID, _ := b.SeedBoard(t, []string{"Todo"})

	output, err := clitest.ExecuteCLICommand(t, app, CreateCmd(), []string{
		"--board", boardID.String(), "--title", "Review",
	})
	require.NoError(t, err)

	stored := b.Lists(t, boardID)
	require.Len(t, stored, 2)
	assert.Equal(t, "List "+stored[1].ID.String()+": Review (position 1)\n", output)
}
