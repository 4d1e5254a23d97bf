// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	ProgramNotFoundId Id = iota + 1
	VersionMismatchId
	MissingProgramId
	PermitListConfigId
	UnregisteredChemistryId
	DownloadFailedId
	StageFailedId
	ConfigLoadFailedId
	InvalidOptionsId
)

type MarkdownMsg string

type HttpLink string

// Issue is a catalogued help page, rendered below the error it explains.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
	// links point at upstream tool documentation.
	links []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

// Render renders the help page with the given glamour style, followed by a
// "See also" list when the issue has links.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.links) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.links {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# A required program could not be found!

simpleaf drives salmon, alevin-fry and pyroe, and looks for each one in this order:
1. The tool's environment variable (` + "`$SALMON`, `$ALEVIN_FRY`, `$PYROE`" + `)
2. The ` + "`tools`" + ` section of your config file
3. Your ` + "`PATH`" + `

## Things you can try:
- Point simpleaf at the executable explicitly:
~~~
$ export SALMON=/path/to/salmon
~~~
- Check which programs simpleaf can see:
~~~
$ simpleaf programs
~~~`,
		links: []HttpLink{
			"https://github.com/COMBINE-lab/salmon",
			"https://github.com/COMBINE-lab/alevin-fry",
			"https://github.com/COMBINE-lab/pyroe",
		},
	}

	versionMismatchIssue = &Issue{
		id: VersionMismatchId,
		mdMsg: `
# A program has an unsupported version!

simpleaf found the program, but its ` + "`--version`" + ` output did not satisfy the required range.

## Supported versions:
| program    | range    |
|------------|----------|
| salmon     | >=1.5.1, <2.0.0 |
| alevin-fry | >=0.4.1, <1.0.0 |
| pyroe      | >=0.6.2, <1.0.0 |

## Things you can try:
- Upgrade the program (e.g. through bioconda)
- Point the tool's environment variable at a different installation
- Run ` + "`simpleaf programs`" + ` to see every version found`,
	}

	missingProgramIssue = &Issue{
		id: MissingProgramId,
		mdMsg: `
# A program was not resolved before it was needed!

This is a bug in simpleaf: the workflow requires a program that was not part of the
resolved program set.

## Things you can try:
- Re-run the command with ` + "`--verbose`" + ` and report the output`,
	}

	permitListConfigIssue = &Issue{
		id: PermitListConfigId,
		mdMsg: `
# The alevin-fry home directory is not configured!

Permit lists for registered chemistries are cached under ` + "`$ALEVIN_FRY_HOME/plist`" + `.

## Things you can try:
- Set the environment variable:
~~~
$ export ALEVIN_FRY_HOME=$HOME/.alevin_fry_home
~~~
- Or set ` + "`alevin_fry_home`" + ` in your config file:
~~~
$ simpleaf config init
~~~`,
	}

	unregisteredChemistryIssue = &Issue{
		id: UnregisteredChemistryId,
		mdMsg: `
# The chemistry is not registered!

Automatic permit list selection (` + "`--knee`" + `, ` + "`--forced-cells`" + `, ` + "`--expect-cells`" + `)
only works for registered chemistries: ` + "`10xv2`" + ` and ` + "`10xv3`" + `.

## Things you can try:
- Pass an explicit permit list with ` + "`--unfiltered-pl <FILE>`" + `
- Check the spelling of ` + "`--chemistry`",
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# The permit list could not be downloaded!

## Things you can try:
- Check your network connection and proxy settings
- Switch the downloader in your config file:
~~~cue
permit_list: downloader: "http"
~~~
- Download the file manually into ` + "`$ALEVIN_FRY_HOME/plist`" + ``,
	}

	stageFailedIssue = &Issue{
		id: StageFailedId,
		mdMsg: `
# A pipeline stage failed!

simpleaf stops at the first stage that exits with a non-zero status. The stage's own
output above describes the problem.

## Things you can try:
- Preview the exact commands with ` + "`--dry-run`" + `
- Re-run the failing command by hand to inspect its output
- Check free disk space in the output directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Check the file location:
~~~
$ simpleaf config path
~~~
- Compare it with the defaults:
~~~
$ simpleaf config show
~~~
- Validate your CUE syntax, or regenerate a fresh file with ` + "`simpleaf config init`",
	}

	invalidOptionsIssue = &Issue{
		id: InvalidOptionsId,
		mdMsg: `
# The command options are invalid!

## Things you can try:
- Run the command with ` + "`--help`" + ` to see every option
- For ` + "`quant`" + `, pick exactly one of ` + "`--knee`" + `, ` + "`--unfiltered-pl`" + `, ` + "`--forced-cells`" + ` and ` + "`--expect-cells`",
	}

	issues = map[Id]*Issue{
		programNotFoundIssue.Id():       programNotFoundIssue,
		versionMismatchIssue.Id():       versionMismatchIssue,
		missingProgramIssue.Id():        missingProgramIssue,
		permitListConfigIssue.Id():      permitListConfigIssue,
		unregisteredChemistryIssue.Id(): unregisteredChemistryIssue,
		downloadFailedIssue.Id():        downloadFailedIssue,
		stageFailedIssue.Id():           stageFailedIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		invalidOptionsIssue.Id():        invalidOptionsIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
