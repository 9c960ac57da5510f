package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Roteiro API Documentation",
        "title": "Roteiro API",
        "version": "1.0"
    },
    "host": "localhost:3000",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check server and storage health",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    },
                    "503": {
                        "description": "A dependency is unhealthy"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Login",
                "description": "Login with login and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "login": {
                                    "type": "string",
                                    "example": "maria"
                                },
                                "senha": {
                                    "type": "string",
                                    "example": "segredo"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "User Registration",
                "description": "Register a new account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "user",
                        "description": "Registration data",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "nome": {
                                    "type": "string",
                                    "example": "Maria Silva"
                                },
                                "login": {
                                    "type": "string",
                                    "example": "maria"
                                },
                                "email": {
                                    "type": "string",
                                    "example": "maria@example.com"
                                },
                                "senha": {
                                    "type": "string",
                                    "example": "segredo"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created"
                    },
                    "409": {
                        "description": "Login already taken"
                    }
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Users"],
                "summary": "List Users",
                "description": "List users, optionally narrowed to an exact login match",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "login",
                        "type": "string",
                        "description": "Exact login to match"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User list"
                    }
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create User",
                "description": "Create a user record directly",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {
                        "description": "User created"
                    },
                    "409": {
                        "description": "Login already taken"
                    }
                }
            }
        },
        "/usuarios/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get User",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "User record"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            },
            "patch": {
                "tags": ["Users"],
                "summary": "Patch User",
                "description": "Shallow-merge the given fields into the user record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated user record"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/itens": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List Items",
                "description": "List catalog items, optionally featured-only or matching a search term",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "query",
                        "name": "destaque",
                        "type": "string",
                        "description": "Any value selects featured items only"
                    },
                    {
                        "in": "query",
                        "name": "q",
                        "type": "string",
                        "description": "Free-text search over name and description"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Item list"
                    }
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create Item",
                "description": "Create a catalog item (admin only)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Item created"
                    },
                    "403": {
                        "description": "Admin privileges required"
                    }
                }
            }
        },
        "/itens/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get Item",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Item record"
                    },
                    "404": {
                        "description": "Item not found"
                    }
                }
            },
            "put": {
                "tags": ["Catalog"],
                "summary": "Update Item",
                "description": "Replace a catalog item (admin only)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Updated item"
                    },
                    "404": {
                        "description": "Item not found"
                    }
                }
            },
            "delete": {
                "tags": ["Catalog"],
                "summary": "Delete Item",
                "description": "Delete a catalog item (admin only)",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Item deleted"
                    },
                    "404": {
                        "description": "Item not found"
                    }
                }
            }
        },
        "/favoritos/{userId}": {
            "get": {
                "tags": ["Favorites"],
                "summary": "Get Favorites",
                "description": "List the item ids favorited by the user",
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Favorite item ids"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Roteiro API",
	Description:      "Roteiro API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
