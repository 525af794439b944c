package main

import (
	"fmt"
	"os"

	"sysyc/src/backend/riscv"
	"sysyc/src/frontend"
	"sysyc/src/lower"
	"sysyc/src/util"
)

// run reads opt.Src, lowers it through the AST-to-IR pass, and writes
// either the IR text or generated RISC-V assembly to opt.Out, depending on
// opt.Mode.
func run(opt util.Options) error {
	src, err := os.ReadFile(opt.Src)
	if err != nil {
		return fmt.Errorf("could not read source code: %s", err)
	}

	root, err := frontend.Parse(src)
	if err != nil {
		return fmt.Errorf("parse error: %s", err)
	}

	ctx := lower.CompUnit(root)

	var out string
	switch opt.Mode {
	case util.ModeKoopa:
		out = ctx.Module.Text()
	case util.ModeRiscv:
		out = riscv.Generate(ctx.Module)
	}

	if err := os.WriteFile(opt.Out, []byte(out), 0644); err != nil {
		return fmt.Errorf("could not write output: %s", err)
	}
	return nil
}

func main() {
	opt, err := util.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("command line argument error: %s\n", err)
		os.Exit(1)
	}

	if err := run(opt); err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
}
