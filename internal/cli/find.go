package cli

import (
	"github.com/spf13/cobra"

	"play-probe/internal/probe"
)

func newFindCmd(a *app) *cobra.Command {
	var (
		all     bool
		methods []string
	)
	cmd := &cobra.Command{
		Use:   "find [package...]",
		Short: "Find the first package name the service account can reach",
		Long: "Tries each candidate package name in order. By default an empty edit is inserted for each " +
			"candidate and the search stops at the first success. With --all every probe method is tried " +
			"for every candidate and all accessible names are reported.",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := a.candidates(args)
			if err != nil {
				return err
			}
			ms := []probe.Method{}
			for _, name := range methods {
				m, err := probe.MethodByName(name)
				if err != nil {
					return err
				}
				ms = append(ms, m)
			}

			ctx, cancel := a.context(cmd)
			defer cancel()
			client, creds, err := a.connect(ctx)
			if err != nil {
				return err
			}
			p := probe.New(client, a.out, a.logger, creds.Email)

			if all || a.cfg.FindAll || len(ms) > 0 {
				found, err := p.FindAll(ctx, candidates, ms...)
				if err != nil {
					return err
				}
				if len(found) == 0 {
					return a.negative(errNotFound)
				}
				a.out.Blank()
				a.out.Success("Use this package name: %s", found[0])
				return nil
			}

			pkg, ok, err := p.FindFirst(ctx, candidates)
			if err != nil {
				return err
			}
			if !ok {
				return a.negative(errNotFound)
			}
			a.out.Blank()
			a.out.Celebrate("SUCCESS! Use package name: %s", pkg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Try every probe method and report all accessible packages")
	cmd.Flags().StringSliceVar(&methods, "methods", nil, "Probe methods for --all: edits.list, edits.insert, reviews.list, edits.get")
	return cmd
}

// negative turns a logical "nothing happened" outcome into an exit status
// only when --strict is set.
func (a *app) negative(err error) error {
	if a.strict {
		return err
	}
	a.logger.Debug("finished", "result", err)
	return nil
}
