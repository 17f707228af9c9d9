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

	"github.com/spf13/cobra"

	"github.com/notargets/goacoustics/acoustics"
)

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate and inspect a room mesh without solving",
	Long: `
Builds the CSG solid from a room file, meshes it with the lattice tet
generator, prints mesh statistics and optionally writes a Gmsh (.msh) file.

goacoustics mesh -I room.yaml -o room.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		roomFile, _ := cmd.Flags().GetString("roomFile")
		outputFile, _ := cmd.Flags().GetString("output")
		ip := processRoomInput(roomFile)
		rm, err := acoustics.NewRoomModes(ip)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = rm.GenerateMesh(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Println(rm.Msh.Statistics())
		fmt.Printf("mesh generated in %v\n", rm.MeshTime)
		if len(outputFile) != 0 {
			if err = rm.Msh.WriteGmsh(outputFile); err != nil {
				fmt.Printf("error writing %s: %s\n", outputFile, err.Error())
				os.Exit(1)
			}
			fmt.Printf("wrote mesh to %s\n", outputFile)
		}
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("roomFile", "I", "", "Room definition file in YAML format")
	MeshCmd.Flags().StringP("output", "o", "", "Write the mesh to a Gmsh (.msh) file")
}
