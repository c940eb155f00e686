package config

import "github.com/spf13/pflag"

// Flags are the command-line overrides shared by the mesh commands.
type Flags struct {
	fs *pflag.FlagSet

	samples  int
	segments int
	noWall   bool
	stacked  bool
	kernel   string
	cells    int
	ascii    bool
}

// BindFlags registers the override flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.IntVar(&f.samples, "samples", 0, "Profile samples along the wall")
	fs.IntVar(&f.segments, "segments", 0, "Angular segments around the axis")
	fs.BoolVar(&f.noWall, "no-wall", false, "Revolve the outer surface only, without wall thickness")
	fs.BoolVar(&f.stacked, "stacked", false, "Stack the shell on a separately closed foot instead of welding")
	fs.StringVar(&f.kernel, "kernel", "", "Meshing kernel: lathe or sdfx")
	fs.IntVar(&f.cells, "cells", 0, "Marching cubes resolution for the sdfx kernel")
	fs.BoolVar(&f.ascii, "ascii", false, "Write ASCII STL instead of binary")
	return f
}

// Apply copies every flag the user set onto cfg. Flags left at their
// defaults do not override the file.
func (f *Flags) Apply(cfg *Config) {
	if f.fs.Changed("samples") {
		cfg.Mesh.Samples = f.samples
	}
	if f.fs.Changed("segments") {
		cfg.Mesh.Segments = f.segments
	}
	if f.fs.Changed("no-wall") {
		cfg.Mesh.Wall = !f.noWall
	}
	if f.fs.Changed("stacked") {
		if f.stacked {
			cfg.Mesh.Joint = "stacked"
		} else {
			cfg.Mesh.Joint = "welded"
		}
	}
	if f.fs.Changed("kernel") {
		cfg.Kernel.Name = f.kernel
	}
	if f.fs.Changed("cells") {
		cfg.Kernel.Cells = f.cells
	}
	if f.fs.Changed("ascii") {
		cfg.Export.ASCII = f.ascii
	}
}
