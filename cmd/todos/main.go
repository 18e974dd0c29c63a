// Command todos is the serverless function entry. Netlify (and any API
// Gateway proxy integration) invokes it once per request; the collection
// lives as long as the warm instance does.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/server"
)

func main() {
	cfg, err := config.Load(config.New(""))
	if err != nil {
		log.Fatal(err)
	}

	engine, err := server.NewEngine(cfg, server.NewStore(cfg))
	if err != nil {
		log.Fatal(err)
	}
	adapter := ginadapter.New(engine)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
