package scaffold_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/Vilsol/mlbox/pkg/scaffold"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	info, err := os.Stat(path)
	testza.AssertNil(t, err)
	return info.Size()
}

func TestScaffold_EmptyDirectoryScenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(root),
		scaffold.WithFiles("a/b/c.py", "d.yaml"),
		scaffold.WithOutput(io.Discard),
	))

	report, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	testza.AssertNil(t, err)
	testza.AssertTrue(t, info.IsDir())

	testza.AssertEqual(t, int64(0), fileSize(t, filepath.Join(root, "a", "b", "c.py")))
	testza.AssertEqual(t, int64(0), fileSize(t, filepath.Join(root, "d.yaml")))

	testza.AssertEqual(t, scaffold.Report{
		{Path: "a/b", Action: scaffold.ActionDirCreated},
		{Path: "a/b/c.py", Action: scaffold.ActionFileCreated},
		{Path: "d.yaml", Action: scaffold.ActionFileCreated},
	}, report)
}

func TestScaffold_ReportUsesCleanSlashPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(root),
		scaffold.WithFiles("./nested//deep/model.py", "nested/deep/train.py"),
		scaffold.WithOutput(io.Discard),
	))

	report, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)

	testza.AssertEqual(t, scaffold.Report{
		{Path: "nested/deep", Action: scaffold.ActionDirCreated},
		{Path: "nested/deep/model.py", Action: scaffold.ActionFileCreated},
		{Path: "nested/deep/train.py", Action: scaffold.ActionFileCreated},
	}, report)
}

func TestScaffold_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(root),
		scaffold.WithFiles("src/app.py", "src/empty.py", "README.md"),
		scaffold.WithOutput(io.Discard),
	))

	_, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)

	testza.AssertNil(t, os.WriteFile(filepath.Join(root, "src", "app.py"), []byte("print('hi')\n"), 0o600))
	testza.AssertNil(t, os.Remove(filepath.Join(root, "README.md")))

	report, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)

	content, err := os.ReadFile(filepath.Join(root, "src", "app.py"))
	testza.AssertNil(t, err)
	testza.AssertEqual(t, "print('hi')\n", string(content))

	testza.AssertEqual(t, []string{"src/app.py"}, report.Paths(scaffold.ActionFileExists))
	testza.AssertEqual(t, []string{"src/empty.py", "README.md"}, report.Paths(scaffold.ActionFileCreated))
	testza.AssertEqual(t, 0, len(report.Paths(scaffold.ActionDirCreated)))
	testza.AssertEqual(t, int64(0), fileSize(t, filepath.Join(root, "README.md")))
}

func TestScaffold_PrintsGuidance(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(t.TempDir()),
		scaffold.WithFiles("main.py"),
		scaffold.WithOutput(&out),
	))

	_, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)

	text := out.String()
	testza.AssertContains(t, text, "Project template setup complete!")
	testza.AssertContains(t, text, "NEXT STEPS:")
	testza.AssertContains(t, text, "Update 'config/config.yaml' with file paths and model parameters.")
	testza.AssertContains(t, text, "   - model/evaluate.py for testing & metrics")
	testza.AssertContains(t, text, "Run 'python main.py' to orchestrate the ML pipeline.")
	testza.AssertTrue(t, strings.Index(text, "setup complete") < strings.Index(text, "NEXT STEPS"))
}

func TestScaffold_FilesystemErrorAborts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testza.AssertNil(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("x"), 0o600))

	var out bytes.Buffer
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(root),
		scaffold.WithFiles("first.py", "blocked/inner.py", "never.py"),
		scaffold.WithOutput(&out),
	))

	report, err := s.Scaffold(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertEqual(t, []string{"first.py"}, report.Paths(scaffold.ActionFileCreated))
	testza.AssertEqual(t, 0, out.Len())

	_, statErr := os.Stat(filepath.Join(root, "never.py"))
	testza.AssertTrue(t, os.IsNotExist(statErr))
}

func TestDefaultFiles(t *testing.T) {
	t.Parallel()

	files := scaffold.DefaultFiles()
	testza.AssertEqual(t, 19, len(files))
	testza.AssertEqual(t, "srcml_project/__init__.py", files[0])
	testza.AssertEqual(t, "srcml_project/constants/__init__.py", files[9])
	testza.AssertEqual(t, "config/config.yaml", files[10])
	testza.AssertEqual(t, "templates/index.html", files[18])
}

func TestScaffold_DefaultSkeleton(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := scaffold.NewScaffolder(scaffold.NewConfig(
		scaffold.WithRoot(root),
		scaffold.WithOutput(io.Discard),
	))

	report, err := s.Scaffold(context.Background())
	testza.AssertNil(t, err)
	testza.AssertEqual(t, scaffold.DefaultFiles(), report.Paths(scaffold.ActionFileCreated))

	for _, file := range scaffold.DefaultFiles() {
		testza.AssertEqual(t, int64(0), fileSize(t, filepath.Join(root, filepath.FromSlash(file))))
	}
}

func TestScaffold_IdempotenceProperty(t *testing.T) {
	t.Parallel()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25

	properties := gopter.NewProperties(parameters)

	properties.Property("populated files survive a second run", prop.ForAll(
		func(contents []string) bool {
			root := t.TempDir()
			files := []string{"srcml_project/utils/common.py", "params.yaml", "research/trials.ipynb"}

			s := scaffold.NewScaffolder(scaffold.NewConfig(
				scaffold.WithRoot(root),
				scaffold.WithFiles(files...),
				scaffold.WithOutput(io.Discard),
			))

			if _, err := s.Scaffold(context.Background()); err != nil {
				return false
			}

			for i, file := range files {
				if i < len(contents) {
					if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(file)), []byte(contents[i]), 0o600); err != nil {
						return false
					}
				}
			}

			if _, err := s.Scaffold(context.Background()); err != nil {
				return false
			}

			for i, file := range files {
				data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
				if err != nil {
					return false
				}

				expected := ""
				if i < len(contents) {
					expected = contents[i]
				}
				if string(data) != expected {
					return false
				}
			}

			return true
		},
		gen.SliceOfN(3, gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestModule_RunsThroughRuntime(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var out bytes.Buffer

	module := scaffold.NewModule(
		scaffold.WithRoot(filepath.Join(root, "ignored")),
		scaffold.WithFiles("config/config.yaml", "main.py"),
		scaffold.WithOutput(&out),
	)

	cfgDir := t.TempDir()
	testza.AssertNil(t, os.WriteFile(
		filepath.Join(cfgDir, "mlbox.yaml"),
		[]byte("modules:\n  scaffold:\n    scaffold:\n      default:\n        root: "+root+"\n"),
		0o600,
	))

	err := app.NewRuntime(
		config.NewModule(config.WithConfigDirs(cfgDir), config.WithEnvPrefix("MLBOX_SCAFFOLD_TEST_UNUSED_")),
		module,
	).RunContext(context.Background())
	testza.AssertNil(t, err)

	testza.AssertEqual(t, []string{"config/config.yaml", "main.py"}, module.Report().Paths(scaffold.ActionFileCreated))
	testza.AssertEqual(t, int64(0), fileSize(t, filepath.Join(root, "main.py")))
	testza.AssertContains(t, out.String(), "NEXT STEPS:")
	testza.AssertEqual(t, "modules.scaffold.scaffold.default", module.ConfigPath())
}
