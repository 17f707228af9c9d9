/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/goacoustics/InputParameters"
	"github.com/notargets/goacoustics/acoustics"
	"github.com/notargets/goacoustics/mesh"
	"github.com/notargets/goacoustics/plotting"
	"github.com/notargets/goacoustics/utils"
)

type ModelModes struct {
	RoomFile   string
	MeshFile   string
	OutputFile string
	Graph      bool
	GraphMode  int
	Delay      int
	Profile    bool
}

// ModesCmd represents the modes command
var ModesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Compute room resonance modes and frequencies",
	Long: `
Runs the full pipeline: CSG union of the room solids, lattice tet meshing,
P1 Helmholtz assembly with reflective walls, eigensolve, then a mode table,
optional Gmsh export of the mode shapes, and optional slice plots.

goacoustics modes -I room.yaml -o modes.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		mm := &ModelModes{}
		mm.RoomFile, _ = cmd.Flags().GetString("roomFile")
		mm.MeshFile, _ = cmd.Flags().GetString("meshFile")
		mm.OutputFile, _ = cmd.Flags().GetString("output")
		mm.Graph, _ = cmd.Flags().GetBool("graph")
		mm.GraphMode, _ = cmd.Flags().GetInt("graphMode")
		mm.Delay, _ = cmd.Flags().GetInt("delay")
		mm.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processRoomInput(mm.RoomFile)
		RunModes(mm, ip)
	},
}

func processRoomInput(roomFile string) (ip *InputParameters.RoomParameters) {
	if len(roomFile) == 0 {
		err := fmt.Errorf("must supply a room file (-I, --roomFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Living Room"
SpeedOfSound: 343.
Resolution: 0.25
NumModes: 8
Solids:
  - Type: cuboid
    Min: [0, 0, 0]
    Max: [5, 4, 3]
Slices:
  - Axis: z
    Station: 1.2
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(roomFile)
	if err != nil {
		panic(err)
	}
	ip = &InputParameters.RoomParameters{
		SpeedOfSound: viper.GetFloat64("SpeedOfSound"),
	}
	if err = ip.Parse(data); err != nil {
		fmt.Printf("error parsing %s: %s\n", roomFile, err.Error())
		os.Exit(1)
	}
	ip.Print()
	return
}

func RunModes(mm *ModelModes, ip *InputParameters.RoomParameters) {
	if mm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	rm, err := acoustics.NewRoomModes(ip)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if len(mm.MeshFile) != 0 {
		var msh *mesh.Mesh
		if msh, err = mesh.ReadGmsh(mm.MeshFile); err != nil {
			fmt.Printf("error reading mesh: %s\n", err.Error())
			os.Exit(1)
		}
		rm.SetMesh(msh)
	}
	if err = rm.Solve(); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Println(rm.Msh.Statistics())
	fmt.Printf("mesh %v, assembly %v, eigensolve %v\n",
		rm.MeshTime, rm.AssembleTime, rm.SolveTime)
	fmt.Println(utils.GetMemUsage())
	rm.PrintModeTable()

	if len(mm.OutputFile) != 0 {
		fields := make([]mesh.NodeField, len(rm.Pairs))
		for i := range rm.Pairs {
			fields[i] = rm.ModeField(i)
		}
		if err = rm.Msh.WriteGmsh(mm.OutputFile, fields...); err != nil {
			fmt.Printf("error writing %s: %s\n", mm.OutputFile, err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote mesh and %d mode views to %s\n", len(fields), mm.OutputFile)
	}

	if mm.Graph {
		plotSlices(rm, mm.GraphMode, mm.Delay)
	}
}

func plotSlices(rm *acoustics.RoomModes, modeIdx, delay int) {
	slices := rm.IP.Slices
	if len(slices) == 0 {
		// Default to a mid-height cut
		b := rm.Solid.Bounds()
		slices = []InputParameters.SliceSpec{{Axis: "z", Station: b.Center().Z}}
	}
	for _, ss := range slices {
		axis, err := acoustics.ParseAxis(ss.Axis)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			continue
		}
		sl, err := rm.SliceMode(modeIdx, axis, ss.Station)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			continue
		}
		sp := plotting.NewSlicePlot(1024, 1024, sl)
		sp.AddColorMap(-1, 1)
		sp.AddPressureSurface()
		plotting.SleepFor(delay)
	}
	fmt.Println("press enter to close the plots")
	fmt.Scanln()
}

func init() {
	rootCmd.AddCommand(ModesCmd)
	ModesCmd.Flags().StringP("roomFile", "I", "", "Room definition file in YAML format")
	ModesCmd.Flags().StringP("meshFile", "F", "", "Optional externally generated mesh in Gmsh 2.2 (.msh) format")
	ModesCmd.Flags().StringP("output", "o", "", "Write mesh and mode shapes to a Gmsh (.msh) file")
	ModesCmd.Flags().BoolP("graph", "g", false, "display slice plots of the computed mode")
	ModesCmd.Flags().IntP("graphMode", "q", 1, "which mode to plot, 0 is the constant mode")
	ModesCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay between slice plots")
	ModesCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}
