package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/deck"
	"github.com/ziadkadry99/slidepack/internal/model"
)

var addPosition int

var addCmd = &cobra.Command{
	Use:   "add <deck.zip> <files...>",
	Short: "Add .html or .md slides to a package",
	Long:  `Parses the given slide files and appends them to the package, or inserts them starting at --at (1-based). The package is rewritten in place.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slides := make([]model.Slide, 0, len(args)-1)
		for _, f := range args[1:] {
			s, err := deck.ParseSlideFile(f)
			if err != nil {
				return err
			}
			slides = append(slides, s)
		}

		p, err := editInPlace(cmd.Context(), args[0], func(p *model.Project) (*model.Project, error) {
			if addPosition <= 0 {
				return model.AppendSlides(p, slides...), nil
			}
			var err error
			for i, s := range slides {
				if p, err = model.InsertSlide(p, addPosition-1+i, s); err != nil {
					return nil, err
				}
			}
			return p, nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d slide(s); %s now has %d\n", len(slides), args[0], len(p.Slides))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <deck.zip> <slide>",
	Short: "Remove a slide from a package",
	Long:  `Removes the slide with the given name, or at the given 1-based position, and rewrites the package in place.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var removed string
		p, err := editInPlace(cmd.Context(), args[0], func(p *model.Project) (*model.Project, error) {
			i, err := slideIndex(p, args[1])
			if err != nil {
				return nil, err
			}
			removed = p.Slides[i].Name
			return model.RemoveSlide(p, p.Slides[i].ID)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q; %s now has %d slide(s)\n", removed, args[0], len(p.Slides))
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <deck.zip> <slide> <position>",
	Short: "Move a slide to a new position",
	Long:  `Moves the slide with the given name or 1-based position to the 1-based target position and rewrites the package in place.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("position %q: expected a number", args[2])
		}
		p, err := editInPlace(cmd.Context(), args[0], func(p *model.Project) (*model.Project, error) {
			from, err := slideIndex(p, args[1])
			if err != nil {
				return nil, err
			}
			return model.MoveSlide(p, from, to-1)
		})
		if err != nil {
			return err
		}
		printOrder(cmd, p)
		return nil
	},
}

// slideIndex resolves a slide by exact name first, then by 1-based position.
func slideIndex(p *model.Project, ref string) (int, error) {
	if i := p.IndexOfName(ref); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(p.Slides) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("slide %q: %w", ref, model.ErrSlideNotFound)
}

func printOrder(cmd *cobra.Command, p *model.Project) {
	out := cmd.OutOrStdout()
	for _, s := range p.Slides {
		fmt.Fprintf(out, "%2d. %s\n", s.Order+1, s.Name)
	}
}

func init() {
	addCmd.Flags().IntVar(&addPosition, "at", 0, "1-based position to insert at (default: append)")
	rootCmd.AddCommand(addCmd, removeCmd, moveCmd)
}
