package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/shaderlive/glbackend"
	"github.com/richinsley/shaderlive/glfwcontext"
	"github.com/richinsley/shaderlive/options"
	"github.com/richinsley/shaderlive/renderer"
	"github.com/richinsley/shaderlive/telemetry"
	"github.com/richinsley/shaderlive/toy"
	"github.com/richinsley/shaderlive/watcher"
)

func init() {
	runtime.LockOSThread()
}

func newNotifier(opts *options.HarnessOptions) (watcher.Notifier, error) {
	if opts.Watch != options.WatchNotify {
		return watcher.Always{}, nil
	}
	n, err := watcher.NewFSNotifier(options.ShaderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", options.ShaderPath, err)
	}
	log.Printf("Watching %s for changes", options.ShaderPath)
	return n, nil
}

func run() error {
	opts, err := options.Load(options.ConfigPath)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	device, err := glbackend.New()
	if err != nil {
		return err
	}

	notifier, err := newNotifier(opts)
	if err != nil {
		device.Destroy()
		return err
	}

	shaders, err := toy.New(device, options.ShaderPath, options.FallbackShaderPath, toy.WithNotifier(notifier))
	if err != nil {
		device.Destroy()
		return err
	}

	r := renderer.NewRenderer(ctx, device, shaders, telemetry.NewRing(telemetry.DefaultCapacity, opts.ReportEvery))
	defer r.Shutdown()

	log.Println("Starting interactive render loop...")
	r.Run()
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Printf("Fatal: %v", err)
		os.Exit(1)
	}
}
