package mdpdf

// SampleDocument is shown on first run, before anything was saved.
const SampleDocument = "# Welcome to mdpdf\n" +
	"\n" +
	"This is a simple Markdown to printable document converter.\n" +
	"\n" +
	"## How to use\n" +
	"\n" +
	"1. Write or paste your Markdown content with `mdpdf edit`\n" +
	"2. Run `mdpdf preview` to see how it will look\n" +
	"3. Run `mdpdf export` to print it or save it as PDF\n" +
	"\n" +
	"## Features\n" +
	"\n" +
	"* **No server** - Everything happens on your machine\n" +
	"* **Local storage** - Your content never leaves your device\n" +
	"* **Dark mode** - Toggle between light and dark themes\n" +
	"\n" +
	"### Example formatting\n" +
	"\n" +
	"* *Italic text* and **bold text**\n" +
	"* [Links](https://example.com)\n" +
	"* Lists like this one\n" +
	"* Code blocks:\n" +
	"\n" +
	"```\n" +
	"function hello() {\n" +
	"  console.log(\"Hello, world!\");\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"> Blockquotes for important callouts\n" +
	"\n" +
	"Enjoy using mdpdf!"
