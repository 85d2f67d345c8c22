package cli

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yuvia/flight-results/internal/usecase"
)

func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Plan a trip with the guided assistant",
		Long: `chat runs the guided assistant on stdin. Answer in free text or type the
number of a suggested option. An empty line repeats the question; "exit"
leaves the conversation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.printer(cmd)
			if err != nil {
				return err
			}
			_, err = runChat(p, bufio.NewScanner(cmd.InOrStdin()))
			return err
		},
	}
}

// runChat drives the conversation until the summary, "exit" or end of input,
// and returns the last reply.
func runChat(p *Printer, in *bufio.Scanner) (usecase.Reply, error) {
	conv := usecase.NewConversation()
	reply := usecase.Step(conv, "")
	printReply(p, reply)

	for reply.Conversation.Step != usecase.StepSummary {
		if !in.Scan() {
			return reply, in.Err()
		}
		text := strings.TrimSpace(in.Text())
		if text == "exit" || text == "quit" {
			return reply, nil
		}
		reply = usecase.Step(reply.Conversation, pickOption(text, reply.Options))
		printReply(p, reply)
	}
	return reply, nil
}

// pickOption maps "2" to the second option; other text is passed through.
func pickOption(text string, options []string) string {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(options) {
		return text
	}
	return options[n-1]
}

func printReply(p *Printer, reply usecase.Reply) {
	p.Info("%s", reply.Question)
	for i, opt := range reply.Options {
		p.Println("  %d) %s", i+1, opt)
	}
	if reply.Search != nil {
		p.Header("Search form")
		p.Println("  ?%s", reply.Search.Values().Encode())
	}
	if reply.Ideas != nil {
		p.Header("Ideas")
		p.Println("  ?%s", reply.Ideas.Values().Encode())
	}
	if reply.Conversation.Step != usecase.StepSummary {
		p.Println("")
	}
}
