package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/batch"
	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/config"
	"github.com/toxicwind/ComfyUI-Manager/internal/gitops"
	"github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"
	"github.com/toxicwind/ComfyUI-Manager/internal/registry"
	"github.com/toxicwind/ComfyUI-Manager/internal/startup"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

func init() {
	for _, op := range batch.Operations() {
		rootCmd.AddCommand(newNodeCmd(op))
	}
}

var nodeShort = map[batch.Operation]string{
	batch.OpInstall:   "Install nodes from the registry",
	batch.OpUninstall: "Remove installed nodes",
	batch.OpUpdate:    "Pull the latest version of installed nodes",
	batch.OpEnable:    "Enable disabled nodes",
	batch.OpDisable:   "Disable nodes without removing them",
}

var nodeDone = map[batch.Operation]string{
	batch.OpInstall:   "Installed",
	batch.OpUninstall: "Uninstalled",
	batch.OpUpdate:    "Updated",
	batch.OpEnable:    "Enabled",
	batch.OpDisable:   "Disabled",
}

func newNodeCmd(op batch.Operation) *cobra.Command {
	var (
		reg          registryFlags
		deferScripts bool
	)
	cmd := &cobra.Command{
		Use:   string(op) + " <node>...",
		Short: nodeShort[op],
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodeOp(cmd, op, args, reg, deferScripts)
		},
	}
	reg.register(cmd)
	if op == batch.OpInstall || op == batch.OpUpdate {
		cmd.Flags().BoolVar(&deferScripts, "defer-scripts", false,
			"Queue install scripts for the next "+branding.HostName()+" start instead of running them now")
	}
	return cmd
}

// runNodeOp resolves the registry and applies op to every node. Only
// registry problems fail the command; per-node failures are printed.
func runNodeOp(cmd *cobra.Command, op batch.Operation, ids []string, reg registryFlags, deferScripts bool) error {
	ctx := cmd.Context()
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	mapping, err := s.resolve(ctx, reg.channel, reg.mode)
	if err != nil {
		return err
	}

	nodesDir, err := s.nodesDir(cmd)
	if err != nil {
		return err
	}

	git := gitops.New(nodesDir, config.Python(), config.GitHosts(), s.logger)
	git.Git = newExecutor()
	if deferScripts {
		git.Scripts = gitops.DeferredRunner{Queue: &startup.Queue{Path: userdata.GetInstallScriptsPath()}}
	}

	d := &batch.Dispatcher{
		Mapping:  mapping,
		Operator: lifecycle.NewOperator(git, s.logger),
		NodesDir: nodesDir,
		Logger:   s.logger,
		Tracer:   s.tracing.Tracer(),
	}
	report := d.Apply(ctx, batch.NewRequest(op, ids, reg.channel, reg.mode))

	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		printResult(out, nodesDir, res)
		if res.Err != nil {
			s.logger.Error("node operation failed", "node", res.ID, "op", res.Op, "error", res.Err)
		}
	}
	return nil
}

func printResult(w io.Writer, nodesDir string, res batch.Result) {
	path := filepath.Join(nodesDir, res.ID)

	var lookupErr *registry.LookupError
	switch {
	case errors.As(res.Err, &lookupErr):
		fmt.Fprintf(w, "ERROR: invalid node name '%s'\n", res.ID)
	case res.Err != nil:
		fmt.Fprintf(w, "ERROR: An error occurred while %s '%s': %v\n", res.Op.Gerund(), res.ID, unwrapOperation(res.Err))
	case res.Outcome == lifecycle.OutcomeUnchanged:
		fmt.Fprintf(w, "WARN: '%s' is %s already.\n", path, strings.ToLower(nodeDone[res.Op]))
	case res.Outcome == lifecycle.OutcomeNotInstalled:
		fmt.Fprintf(w, "WARN: '%s' is not installed.\n", path)
	default:
		fmt.Fprintf(w, "%s '%s'.\n", nodeDone[res.Op], res.ID)
	}
}

// unwrapOperation drops the OperationError prefix, which repeats the
// operation and node already named in the message.
func unwrapOperation(err error) error {
	var opErr *lifecycle.OperationError
	if errors.As(err, &opErr) {
		return opErr.Err
	}
	return err
}
