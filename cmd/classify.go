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
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/ensightfaces/InputParameters"
	"github.com/notargets/ensightfaces/export"
	"github.com/notargets/ensightfaces/mesh"
)

type Classify struct {
	GridFile     string
	ICFile       string
	OutputFile   string
	Participants int // Overrides the parameter file when > 0
	Profile      string
}

// ClassifyCmd represents the classify command
var ClassifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify mesh faces into EnSight element types and write the parts",
	Long: `
Reads a mesh and a YAML parts file, sorts the faces of every part into
tria3, quad4 and nsided blocks across the requested number of participants
and writes the element blocks of each part.

ensightfaces classify -F mesh.su2 -I parts.yaml -o mesh.geo`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		c := &Classify{}
		if c.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			return
		}
		if c.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		c.OutputFile, _ = cmd.Flags().GetString("output")
		c.Participants, _ = cmd.Flags().GetInt("participants")
		c.Profile, _ = cmd.Flags().GetString("profile")

		log := newLogger()
		defer func() { _ = log.Sync() }()
		return RunClassify(c, cmd.OutOrStdout(), log)
	},
}

func init() {
	rootCmd.AddCommand(ClassifyCmd)
	ClassifyCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	ClassifyCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file describing the parts to export")
	ClassifyCmd.Flags().StringP("output", "o", "", "File for the element blocks, stdout when empty")
	ClassifyCmd.Flags().IntP("participants", "n", 0, "number of participants, overrides the parts file")
	ClassifyCmd.Flags().String("profile", "", "write a 'cpu' or 'mem' profile to the working directory")
}

func RunClassify(c *Classify, stdout io.Writer, log *zap.Logger) (err error) {
	if len(c.GridFile) == 0 {
		return errors.New("must supply a grid file (-F, --gridFile) in .su2 format")
	}
	if len(c.ICFile) == 0 {
		return errors.Errorf("must supply a parts file (-I, --inputConditionsFile), example:%s",
			InputParameters.ExampleFile)
	}

	switch c.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return errors.Errorf("unknown profile type %q, use cpu or mem", c.Profile)
	}

	var data []byte
	if data, err = os.ReadFile(c.ICFile); err != nil {
		return errors.Wrap(err, "reading parts file")
	}
	ep := &InputParameters.ExportParameters{}
	if err = ep.Parse(data); err != nil {
		return errors.Wrapf(err, "in %s", c.ICFile)
	}
	if c.Participants > 0 {
		ep.Participants = c.Participants
	}
	if ce := log.Check(zap.DebugLevel, "export parameters"); ce != nil {
		var sb strings.Builder
		ep.Print(&sb)
		ce.Write(zap.String("parameters", sb.String()))
	}

	log.Info("reading mesh", zap.String("file", c.GridFile))
	m, err := mesh.ReadMeshFile(c.GridFile)
	if err != nil {
		return errors.Wrapf(err, "reading mesh %s", c.GridFile)
	}
	m.PrintStatistics(log)

	w := stdout
	if c.OutputFile != "" {
		var file *os.File
		if file, err = os.Create(c.OutputFile); err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = errors.Wrap(cerr, "closing output")
			}
		}()
		w = file
	}

	log.Info("classifying parts",
		zap.String("title", ep.Title),
		zap.Int("parts", len(ep.Parts)),
		zap.Int("participants", ep.Participants),
		zap.Bool("sort", ep.Sort))
	return export.Run(m, ep, w, log)
}
