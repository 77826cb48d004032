package nlp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const systemText = `You are a workers'-compensation case analyst. Given ticket text, identify the date the worker was injured. Dates are Australian day-first unless the format is unambiguous. Return a valid JSON object:
{"date": "YYYY-MM-DD" or null, "confidence": "high"|"medium"|"low", "reasoning": "<brief explanation>", "source_text": "<the fragment the date came from>"}
Return null for date if the text does not state or imply when the injury happened. Never guess.`

const promptTemplate = `Ticket created: %s
%sTicket text:
%s

Identify the injury date. Return only the JSON object.`

// SDKClient implements Client on the Anthropic SDK.
type SDKClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewSDKClient builds a client for the given API key and model.
func NewSDKClient(apiKey, model string, maxTokens int64) *SDKClient {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &SDKClient{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *SDKClient) ExtractInjuryDate(ctx context.Context, req Request) (*Result, error) {
	var contextBlock strings.Builder
	if req.WorkerName != "" {
		fmt.Fprintf(&contextBlock, "Worker: %s\n", req.WorkerName)
	}
	if req.CompanyName != "" {
		fmt.Fprintf(&contextBlock, "Employer: %s\n", req.CompanyName)
	}

	prompt := fmt.Sprintf(promptTemplate,
		req.ReferenceDate.Format("2006-01-02"),
		contextBlock.String(),
		req.Corpus,
	)

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []sdk.TextBlockParam{{Text: systemText}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "nlp: create message")
	}

	var text strings.Builder
	for _, b := range msg.Content {
		if b.Type == "text" {
			text.WriteString(b.Text)
		}
	}

	result, err := parseResult(text.String())
	if err != nil {
		return nil, eris.Wrap(err, "nlp: parse response")
	}
	return result, nil
}
