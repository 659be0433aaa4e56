// Package docs registers the dashboard API description with swag so
// gin-swagger can serve it at /swagger/index.html.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness check",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/results": {
            "get": {
                "tags": ["results"],
                "summary": "Get screening results",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "ticker", "in": "query"},
                    {"type": "string", "name": "sector", "in": "query"},
                    {"type": "number", "name": "min_score", "in": "query"},
                    {"type": "number", "name": "max_score", "in": "query"},
                    {"type": "string", "default": "SQGLP_Score", "name": "sort", "in": "query"},
                    {"type": "string", "default": "desc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ResultsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/results/download": {
            "get": {
                "tags": ["results"],
                "summary": "Download screening results as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/sectors": {
            "get": {
                "tags": ["sectors"],
                "summary": "Sector distribution",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SectorCount"}}}
                }
            }
        },
        "/sectors/heatmap": {
            "get": {
                "tags": ["sectors"],
                "summary": "Sector heatmap",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SectorHeatmapRow"}}}
                }
            }
        },
        "/tickers/{ticker}/technicals": {
            "get": {
                "tags": ["tickers"],
                "summary": "Technical indicators",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "ticker", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TechnicalsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/tickers/{ticker}/history": {
            "get": {
                "tags": ["tickers"],
                "summary": "Score history",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "ticker", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.HistoryResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/admin/run": {
            "post": {
                "tags": ["admin"],
                "summary": "Run the screener",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Required when ADMIN_TOKEN is set", "name": "X-Admin-Token", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RunSummary"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "message": {"type": "string"}}
        },
        "models.AnalysisResult": {
            "type": "object",
            "properties": {
                "company_name": {"type": "string"},
                "ticker": {"type": "string"},
                "revenue_growth": {"type": "number"},
                "earnings_growth": {"type": "number"},
                "roic": {"type": "number"},
                "market_cap_cr": {"type": "number"},
                "debt_to_equity": {"type": "number"},
                "pe_ratio": {"type": "number"},
                "dividend_yield": {"type": "number"},
                "price_to_sales": {"type": "number"},
                "operating_margin": {"type": "number"},
                "free_cash_flow_yield": {"type": "number"},
                "beta": {"type": "number"},
                "sector": {"type": "string"},
                "sqglp_score": {"type": "number"},
                "predictive_growth_score": {"type": "number"},
                "pgs": {"type": "number"},
                "recommendation": {"type": "string", "enum": ["Strong Buy", "Buy", "Hold", "Sell"]}
            }
        },
        "models.ResultsResponse": {
            "type": "object",
            "properties": {
                "generated_at": {"type": "string"},
                "count": {"type": "integer"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.AnalysisResult"}}
            }
        },
        "models.SectorCount": {
            "type": "object",
            "properties": {"sector": {"type": "string"}, "count": {"type": "integer"}}
        },
        "models.SectorHeatmapRow": {
            "type": "object",
            "properties": {
                "sector": {"type": "string"},
                "count": {"type": "integer"},
                "metrics": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "models.TechnicalsResponse": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "as_of": {"type": "string"},
                "close": {"type": "number"},
                "sma_20": {"type": "number"},
                "ema_20": {"type": "number"},
                "rsi_14": {"type": "number"},
                "macd": {"type": "number"},
                "macd_signal": {"type": "number"}
            }
        },
        "models.ScorePoint": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "date": {"type": "string"},
                "sqglp_score": {"type": "number"},
                "recommendation": {"type": "string"}
            }
        },
        "models.HistoryResponse": {
            "type": "object",
            "properties": {
                "ticker": {"type": "string"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/models.ScorePoint"}}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "ticker": {"type": "string"}, "message": {"type": "string"}}
        },
        "models.RunSummary": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "strategy": {"type": "string"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "universe": {"type": "integer"},
                "fallback": {"type": "boolean"},
                "analyzed": {"type": "integer"},
                "skipped": {"type": "integer"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SQGLP Screener API",
	Description:      "Results, sector views and technicals for the SQGLP equity screen.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
