/*
Package config loads stample recipes: saved invocations that name a source,
a destination, globs and placeholder values.

	            +-------------+
	            |   Recipe    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Let a template ship with the command that applies it
- Keep unknown keys an error in every format

🔄 Flow:
1. Load picks a parser by file extension
2. Relative source and destination paths are resolved against the recipe's
   own directory
3. Validate checks placeholder names against the token grammar
4. Apply fills the gaps of the parsed command line; command line values win

🔍 Example (stample.yaml):

	source: templates/webdev
	destination: src
	globs: ["pages/*.html", "scripts/*.ts"]
	placeholders:
	  TITLE: My Page
	no_interaction: false
	exclude_hidden: false

The same recipe in HCL, reading the environment:

	source       = "templates/webdev"
	destination  = "${env.HOME}/site/src"
	globs        = ["pages/*.html", "scripts/*.ts"]
	placeholders = {
	  TITLE = "My Page"
	}
*/
package config
