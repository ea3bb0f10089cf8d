package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// uploadPositions creates a static VAO with a single vec3 attribute at location 0.
func uploadPositions(vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*floatSize, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return vao, vbo
}

// deleteMesh releases a VAO/VBO pair and zeroes the handles.
func deleteMesh(vao, vbo *uint32) {
	if *vbo != 0 {
		gl.DeleteBuffers(1, vbo)
		*vbo = 0
	}
	if *vao != 0 {
		gl.DeleteVertexArrays(1, vao)
		*vao = 0
	}
}
