package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	_ "github.com/cashenchris/grouptheory/pyautf"
	_ "github.com/go-python/gpython/stdlib"
)

// go_gpython runs the given script, or a REPL if pathname is empty, with the _autf module available.
func go_gpython(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var (
		err error
	)
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)

		_, err = py.RunSrc(ctx, "import _autf as autf", "<startup>", replCtx.Module)
		if err == nil {
			cli.RunREPL(replCtx)
		}

	} else {
		startTime := time.Now()
		fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)

		if err == nil {
			elapsed := time.Since(startTime)
			fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
		}
	}

	if err != nil {
		py.TracebackDump(err)
		klog.Errorf("gpython: %v", err)
	}

	// This will close all open catalogs
	ctx.Close()
	<-ctx.Done()

	return err
}
