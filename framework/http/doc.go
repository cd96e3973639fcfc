// Package http provides Laravel-style request and response helpers.
//
// # Request
//
// Request wraps *http.Request with a fluent API mirroring Laravel's
// Illuminate\Http\Request.
//
//	req := gohttp.NewRequest(r)
//
//	// Bind a JSON body into a struct
//	var c form.Change
//	if err := req.Bind(&c); err != nil { ... }
//
//	// Input retrieval (query string + POST body)
//	name := req.Input("name", "default")
//	all  := req.All()          // map[string]string
//	ok   := req.Has("checked")
//
//	// Route params (requires Chi router)
//	id := req.RouteParam("id")
//
//	// Content negotiation
//	req.IsJSON()     // Content-Type: application/json
//	req.WantsJSON()  // Accept: application/json
//	req.Cookie("form_session")
//
// # Response
//
// Response wraps http.ResponseWriter with helpers matching Laravel's
// response() helper and JsonResponse.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.NoContent()               // 204
//	res.HTML(200, fragment)       // text/html body
//
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
//
//	res.RedirectTo("/dashboard")  // 302
//	res.SeeOther("/")             // 303, after a POST
//
// # ViewEngine
//
// Templates are parsed once from any fs.FS, usually an embed.FS.
//
//	engine, err := gohttp.NewViewEngine(views.FS, "*.html")
//	engine.View(w, "page", data)            // buffered, 500 on error
//	engine.Render(&buf, "form", fragment)   // any io.Writer
package http
