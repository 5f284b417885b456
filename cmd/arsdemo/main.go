// Command arsdemo drives an arspaint document from a gesture script and
// writes the flattened result.
//
// Without -script a built-in demo is played. See script.go for the syntax.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/arspaint"
)

const demoScript = `
# sky and a sun
tool rectangle
size line 4
drag 20,20 300,180
tool ellipse
color 255,200,0
drag 220,40 280,100
tool brush
size brush 8
color 40,120,40
drag 20,170 80,150 140,172 200,150 300,175
layer add
layer blend multiply
layer opacity 0.5
color 0,0,255
drag 60,60 160,120
select 40,40 120,120
move 80,80 200,80
commit
`

func main() {
	var (
		width   = flag.Int("width", 320, "canvas width")
		height  = flag.Int("height", 200, "canvas height")
		input   = flag.String("input", "", "image to open instead of a blank canvas")
		script  = flag.String("script", "", "gesture script (default: built-in demo)")
		output  = flag.String("output", "arsdemo.png", "output file")
		verbose = flag.Bool("v", false, "log document events to stderr")
	)
	flag.Parse()

	if *verbose {
		arspaint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		doc *arspaint.Document
		err error
	)
	if *input != "" {
		doc, err = arspaint.OpenDocument(*input)
	} else {
		doc, err = arspaint.NewDocument(*width, *height)
	}
	if err != nil {
		log.Fatalf("Failed to create document: %v", err)
	}

	src := demoScript
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		src = string(data)
	}

	cmds, err := parseScript(strings.NewReader(src))
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}
	if err := run(doc, cmds); err != nil {
		log.Fatalf("Script failed: %v", err)
	}

	if err := doc.Save(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Saved %s (%dx%d, %d layers, %d commands)\n",
		*output, doc.Width(), doc.Height(), doc.Layers().Len(), doc.History().Len())
}
