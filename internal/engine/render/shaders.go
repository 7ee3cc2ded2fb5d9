package render

import "fmt"

// MaxBones is the size of the bone matrix uniform array. Skeletons
// larger than this are truncated at upload.
const MaxBones = 64

var vertexShader = fmt.Sprintf(vertexShaderTmpl, MaxBones)

const vertexShaderTmpl = `
#version 410 core

layout(location = 0) in vec3 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_texcoord;
layout(location = 3) in vec4 a_joints;
layout(location = 4) in vec4 a_weights;

uniform mat4 u_view_proj;
uniform mat4 u_model;
uniform int  u_has_skeleton;
uniform mat4 u_bone_matrix[%d];

out vec3 v_normal;
out vec2 v_texcoord;

void main() {
	vec4 pos = vec4(a_position, 1.0);
	vec4 nrm = vec4(a_normal, 0.0);

	if (u_has_skeleton == 1) {
		mat4 skin =
			u_bone_matrix[int(a_joints.x)] * a_weights.x +
			u_bone_matrix[int(a_joints.y)] * a_weights.y +
			u_bone_matrix[int(a_joints.z)] * a_weights.z +
			u_bone_matrix[int(a_joints.w)] * a_weights.w;
		pos = skin * pos;
		nrm = skin * nrm;
	}

	v_normal = normalize((u_model * nrm).xyz);
	v_texcoord = a_texcoord;
	gl_Position = u_view_proj * u_model * pos;
}
`

const fragmentShader = `
#version 410 core

in vec3 v_normal;
in vec2 v_texcoord;

uniform int u_is_lit;

out vec4 frag_color;

void main() {
	vec3 base = vec3(0.78, 0.72, 0.62);
	float shade = 1.0;
	if (u_is_lit == 1) {
		vec3 light = normalize(vec3(0.4, 1.0, 0.6));
		shade = 0.35 + 0.65 * max(dot(normalize(v_normal), light), 0.0);
	}
	frag_color = vec4(base * shade, 1.0);
}
`
