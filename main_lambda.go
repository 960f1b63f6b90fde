//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type splitResponse struct {
	SplitResult
	Detail string `json:"detail"`
}

// handler serves Function URL requests. The body carries the game config
// inline plus optional mode, seed, and candidate value overrides:
//
//	{"config": {...}, "mode": "calculate", "values": [0.25, 1, 5], "seed": 7}
func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}
	if !gjson.Valid(body) {
		return errResp(400, "invalid JSON body")
	}
	root := gjson.Parse(body)

	rawCfg := root.Get("config")
	if !rawCfg.Exists() {
		return errResp(400, "missing config field")
	}
	cfg, err := parseJSONConfig([]byte(rawCfg.Raw))
	if err != nil {
		return errResp(400, err.Error())
	}
	if err := cfg.validate(); err != nil {
		return errResp(400, err.Error())
	}

	tuning := DefaultConfig()
	if seed := root.Get("seed"); seed.Exists() {
		tuning.Seed = seed.Int()
	}
	if values := root.Get("values"); values.IsArray() {
		var custom []float64
		for _, v := range values.Array() {
			custom = append(custom, v.Float())
		}
		tuning.Values = custom
	}

	mode := ModeAuto
	if m := root.Get("mode"); m.Exists() {
		mode = m.String()
	}

	res, err := runSplit(ctx, cfg, tuning, mode)
	if err != nil {
		return errResp(422, err.Error())
	}

	resp := splitResponse{
		SplitResult: *res,
		Detail:      FormatDistribution(res.Distribution, cfg.ChipSet(), cfg.BuyInPerPerson),
	}
	respJSON, _ := json.Marshal(resp)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	lambda.Start(handler)
}
