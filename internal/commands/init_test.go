package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categoriesCSV "github.com/booked-dev/booked/internal/categories"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "booked-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "booked")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/booked")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runBooked(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Test Trader")
	require.NoError(t, err)

	expectedDirs := []string{
		"categories",
		"logs",
		"statements",
		filepath.Join("statements", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Jo Bloggs Consulting")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "books.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Jo Bloggs Consulting")
	assert.Contains(t, contents, "year_start: 04-06")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestInit_Categories(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Test Trader")
	require.NoError(t, err)

	path := filepath.Join(dir, "categories", "categories.csv")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cats, err := categoriesCSV.ReadCategories(f)
	require.NoError(t, err)
	assert.Len(t, cats, 13, "default chart has 13 categories")
}

func TestInit_GitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Test Trader")
	require.NoError(t, err)

	// .git directory should exist.
	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	// git log should have an init commit.
	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init:")

	// Verify author.
	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Booked <books@booked.dev>")
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Test Trader")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	contents := string(data)

	for _, pattern := range []string{"exports/", ".booked-cache/"} {
		assert.Contains(t, contents, pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}

func TestInit_BankAccounts(t *testing.T) {
	dir := t.TempDir()
	_, err := runBooked(t, "init", dir, "--name", "Test Trader", "--bank", "hsbc", "--bank", "monzo")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "books.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "bank: hsbc")
	assert.Contains(t, contents, "bank: monzo")
}

func TestInit_UnknownBank(t *testing.T) {
	dir := t.TempDir()
	out, err := runBooked(t, "init", dir, "--name", "Test Trader", "--bank", "narnia")
	require.Error(t, err)
	assert.Contains(t, out, "narnia")
}
