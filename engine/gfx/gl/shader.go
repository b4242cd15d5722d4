package glbackend

import (
	"embed"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xenon/engine/assets"
)

//go:embed shaders
var shaderFS embed.FS

// program is a linked shader program with the uniforms both pipelines share.
type program struct {
	id     uint32
	uSize  int32
	uScale int32
	uTex   int32
}

func loadProgram(vertName, fragName string) (program, error) {
	vsSrc, err := assets.LoadShader(shaderFS, "shaders/"+vertName)
	if err != nil {
		return program{}, err
	}
	fsSrc, err := assets.LoadShader(shaderFS, "shaders/"+fragName)
	if err != nil {
		return program{}, err
	}
	id, err := makeProgram(vsSrc, fsSrc)
	if err != nil {
		return program{}, fmt.Errorf("%s/%s: %w", vertName, fragName, err)
	}
	return program{
		id:     id,
		uSize:  gl.GetUniformLocation(id, gl.Str("uSize\x00")),
		uScale: gl.GetUniformLocation(id, gl.Str("uScale\x00")),
		uTex:   gl.GetUniformLocation(id, gl.Str("uTex\x00")),
	}, nil
}

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}
