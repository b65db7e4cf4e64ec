package scaffold

// DefaultProjectName is the package name used in the default skeleton.
const DefaultProjectName = "ml_project"

// DefaultFiles returns the ML project skeleton, in creation order.
//
// The package paths are "src" immediately followed by the project name, with
// no separator ("srcml_project/..."). Existing projects were generated with
// this layout, so it is reproduced as is.
func DefaultFiles() []string {
	pkg := "src" + DefaultProjectName

	return []string{
		pkg + "/__init__.py",
		pkg + "/components/__init__.py",
		pkg + "/utils/__init__.py",
		pkg + "/utils/common.py",
		pkg + "/config/__init__.py",
		pkg + "/config/configuration.py",
		pkg + "/pipeline/evaluate.py",
		pkg + "/entity/__init__.py",
		pkg + "/entity/config_entity.py",
		pkg + "/constants/__init__.py",
		"config/config.yaml",
		"params.yaml",
		"schema.yaml",
		"app.py",
		"main.py",
		"requirements.txt",
		"setup.py",
		"research/trials.ipynb",
		"templates/index.html",
	}
}
